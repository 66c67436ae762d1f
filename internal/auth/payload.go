package auth

import (
	"encoding/base64"
	"encoding/json"
)

// ResetPayload is the transport form of a pending reset: the email and
// the opaque token, JSON-encoded then base64-encoded so the pair can
// ride inside an emailed link. The encoding is reversible and carries no
// signature; the persisted (user, token) row is the security boundary,
// so a tampered payload can only produce a token that fails the store
// match.
type ResetPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func EncodePayload(p ResetPayload) string {
	b, _ := json.Marshal(p)
	return base64.URLEncoding.EncodeToString(b)
}

// DecodePayload is the exact inverse of EncodePayload. Malformed base64,
// malformed JSON and missing fields all collapse into ErrInvalidToken;
// the caller cannot learn which part was wrong.
func DecodePayload(encoded string) (ResetPayload, error) {
	b, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ResetPayload{}, ErrInvalidToken
	}

	var p ResetPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return ResetPayload{}, ErrInvalidToken
	}
	if p.Email == "" || p.Token == "" {
		return ResetPayload{}, ErrInvalidToken
	}

	return p, nil
}
