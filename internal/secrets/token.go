package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "fdehunt"

	notionAccount = "fdehunt:notion:api-token"
	notionEnvVar  = "NOTION_API_TOKEN"
)

// NotionToken looks the API token up in the OS keychain first and falls
// back to the NOTION_API_TOKEN environment variable.
func NotionToken() (string, error) {
	tok, err := keyring.Get(KeyringService, notionAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}

	if tok := strings.TrimSpace(os.Getenv(notionEnvVar)); tok != "" {
		return tok, nil
	}

	return "", errors.New("notion token not found (set it in keychain or via NOTION_API_TOKEN)")
}

// SetNotionToken stores the token in the keychain.
func SetNotionToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, notionAccount, token)
}

// DeleteNotionToken removes the token from the keychain.
func DeleteNotionToken() error {
	return keyring.Delete(KeyringService, notionAccount)
}
