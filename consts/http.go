package consts

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodConnect = "CONNECT"
	MethodTrace   = "TRACE"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

const (
	HeaderAllow       = "Allow"
	HeaderContentType = "Content-Type"
)

const ( // pattern grammar characters
	RuneSlash    = '/'
	RuneLBracket = '['
	RuneRBracket = ']'
	RuneColon    = ':'
	RuneQuestion = '?'
	RuneAsterisk = '*'
	RuneHash     = '#'
)
