package authapi

import "github.com/skillsenselab/authd/internal/validation"

// RegisterSchema declares the request body for POST /register.
// Email is normalized (trimmed, lower-cased) before any lookup or insert.
var RegisterSchema = validation.Schema{
	Fields: []validation.Field{
		{Name: "name", Type: validation.TypeString, Required: true, Trim: true, MinLen: 2, MaxLen: 50},
		{Name: "email", Type: validation.TypeString, Required: true, Trim: true, Lower: true, MaxLen: 255, Format: "email"},
		{Name: "password", Type: validation.TypeString, Required: true, MinLen: 8, MaxLen: 72},
	},
}

// LoginSchema declares the request body for POST /login. Password rules are
// looser than registration on purpose: the stored hash decides.
var LoginSchema = validation.Schema{
	Fields: []validation.Field{
		{Name: "email", Type: validation.TypeString, Required: true, Trim: true, Lower: true, MaxLen: 255, Format: "email"},
		{Name: "password", Type: validation.TypeString, Required: true, MaxLen: 72},
	},
}
