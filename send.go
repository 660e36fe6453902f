package klein

import (
	"encoding/json"
	"io"

	"github.com/danidoble/klein/consts"
)

// HTML sends the body with the content type set to `text/html`.
func HTML(ctx Context, body string) error {
	return sendString(ctx, consts.MIMEHTML, body)
}

// JSON encodes the object in JSON format and sends it with the content
// type set to `application/json`.
func JSON(ctx Context, object any) error {
	w := ctx.Writer()
	if w == nil {
		return ErrNoWriter
	}
	w.Header().Set(consts.HeaderContentType, consts.MIMEJSON)
	return json.NewEncoder(w).Encode(object)
}

// Text sends the body with the content type set to `text/plain`.
func Text(ctx Context, body string) error {
	return sendString(ctx, consts.MIMETextPlain, body)
}

func sendString(ctx Context, mime string, body string) error {
	w := ctx.Writer()
	if w == nil {
		return ErrNoWriter
	}
	w.Header().Set(consts.HeaderContentType, mime)
	_, err := io.WriteString(w, body)
	return err
}
