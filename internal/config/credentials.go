package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/wscrape/wscrape/internal/errors"
)

// Credentials holds a user/pass pair loaded from a credential file.
// One file is loaded for the store connection and one for the remote session.
type Credentials struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// LoadCredentials reads a credential file: a JSON document with exactly two
// string fields, "user" and "pass". Malformed JSON, unknown fields, or
// missing/empty fields are fatal construction-time errors.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(ExpandTilde(path))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot read credential file: "+path,
			"Check the file exists and is readable")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var creds Credentials
	if err := dec.Decode(&creds); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Malformed credential file: "+path,
			`The file must contain exactly {"user": "...", "pass": "..."}`)
	}

	if creds.User == "" {
		return nil, errors.New(errors.ErrConfig,
			"Credential file is missing the \"user\" field: "+path,
			`The file must contain exactly {"user": "...", "pass": "..."}`)
	}
	if creds.Pass == "" {
		return nil, errors.New(errors.ErrConfig,
			"Credential file is missing the \"pass\" field: "+path,
			`The file must contain exactly {"user": "...", "pass": "..."}`)
	}

	return &creds, nil
}
