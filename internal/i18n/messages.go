package i18n

// Key identifies a user-facing message independently of the language it is
// rendered in. Machine-readable error codes in API responses are separate
// and never localized.
type Key string

const (
	MsgMissingFields      Key = "missing_fields"
	MsgPasswordTooShort   Key = "password_too_short"
	MsgInvalidEmail       Key = "invalid_email"
	MsgUserExists         Key = "user_exists"
	MsgInvalidCredentials Key = "invalid_credentials"
	MsgProfilePicRequired Key = "profile_pic_required"
	MsgLogoutOK           Key = "logout_ok"
	MsgInternalError      Key = "internal_error"
	MsgTooManyRequests    Key = "too_many_requests"
	MsgInvalidRequestBody Key = "invalid_request_body"
)

// Spanish is the default language: the original deployment ships Spanish
// user-facing strings.
const DefaultLang = "es"

var catalogs = map[string]map[Key]string{
	"es": {
		MsgMissingFields:      "Por favor, complete todos los campos",
		MsgPasswordTooShort:   "La contraseña debe tener al menos 8 caracteres",
		MsgInvalidEmail:       "El correo electrónico no es válido",
		MsgUserExists:         "El usuario ya existe",
		MsgInvalidCredentials: "Credenciales Invalidas",
		MsgProfilePicRequired: "Por favor, sube una imagen de perfil",
		MsgLogoutOK:           "Logout exitoso",
		MsgInternalError:      "Internal Server Error",
		MsgTooManyRequests:    "Demasiadas solicitudes, intente más tarde",
		MsgInvalidRequestBody: "Cuerpo de la solicitud inválido",
	},
	"en": {
		MsgMissingFields:      "Please fill in all fields",
		MsgPasswordTooShort:   "Password must be at least 8 characters",
		MsgInvalidEmail:       "Email address is not valid",
		MsgUserExists:         "User already exists",
		MsgInvalidCredentials: "Invalid credentials",
		MsgProfilePicRequired: "Please upload a profile picture",
		MsgLogoutOK:           "Logged out successfully",
		MsgInternalError:      "Internal Server Error",
		MsgTooManyRequests:    "Too many requests, please try again later",
		MsgInvalidRequestBody: "Invalid request body",
	},
}

// Catalog resolves message keys for a single language.
type Catalog struct {
	messages map[Key]string
}

// NewCatalog returns the catalog for the given language, falling back to the
// default language when the requested one is unknown.
func NewCatalog(lang string) *Catalog {
	messages, ok := catalogs[lang]
	if !ok {
		messages = catalogs[DefaultLang]
	}
	return &Catalog{messages: messages}
}

// Get returns the localized message for a key. An unknown key returns the
// key itself so a missing translation is visible rather than silent.
func (c *Catalog) Get(k Key) string {
	if msg, ok := c.messages[k]; ok {
		return msg
	}
	return string(k)
}
