// Package auth provides ARI credentials for the REST API and the event socket.
package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Credentials holds the ARI user configured in ari.conf.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials builds credentials from a username and either an inline
// password or a file holding it. The file wins when both are set.
func LoadCredentials(username, password, passwordFile string) (*Credentials, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.Contains(username, ":") {
		return nil, fmt.Errorf("username must not contain ':'")
	}

	if passwordFile != "" {
		p, err := LoadPassword(passwordFile)
		if err != nil {
			return nil, fmt.Errorf("load password: %w", err)
		}
		password = p
	}

	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	return &Credentials{
		Username: username,
		Password: password,
	}, nil
}

// LoadPassword reads a password file. Surrounding whitespace, including the
// trailing newline most editors add, is trimmed.
func LoadPassword(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read password file: %w", err)
	}

	password := strings.TrimSpace(string(data))
	if password == "" {
		return "", fmt.Errorf("password file %s is empty", path)
	}
	return password, nil
}

// APIKey returns the value of the api_key query parameter: "user:password".
func (c *Credentials) APIKey() string {
	return c.Username + ":" + c.Password
}

// BasicAuthHeader returns the Authorization header value for REST requests.
func (c *Credentials) BasicAuthHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.APIKey()))
}

// Apply sets the Authorization header on req.
func (c *Credentials) Apply(req *http.Request) {
	req.Header.Set("Authorization", c.BasicAuthHeader())
}
