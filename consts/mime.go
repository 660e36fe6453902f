package consts

const (
	MIMETextPlain = "text/plain"
	MIMEJSON      = "application/json"
	MIMEHTML      = "text/html"
)
