package firebase

import "encoding/json"

// Firestore REST payloads

// Value is a Firestore typed value. Exactly one field is set.
type Value struct {
	StringValue    *string          `json:"stringValue,omitempty"`
	IntegerValue   *string          `json:"integerValue,omitempty"` // int64 encoded as decimal string
	DoubleValue    *float64         `json:"doubleValue,omitempty"`
	BooleanValue   *bool            `json:"booleanValue,omitempty"`
	TimestampValue *string          `json:"timestampValue,omitempty"`
	NullValue      *json.RawMessage `json:"nullValue,omitempty"`
	MapValue       *MapValue        `json:"mapValue,omitempty"`
	ArrayValue     *ArrayValue      `json:"arrayValue,omitempty"`
}

// MapValue is a nested map field
type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// ArrayValue is a list field
type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// Document is a single Firestore document
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// ListDocumentsResponse is the response of a collection read
type ListDocumentsResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

// ErrorResponse is the error envelope shared by Google REST APIs
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Identity Toolkit / Secure Token payloads

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type updateProfileRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// AccountResponse is returned by signInWithPassword, signUp and update
type AccountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

// TokenResponse is returned by the secure token endpoint
type TokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}
