package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// Upload carries one file attached to a registration submit.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// RegistrationAPI extends the registration resource with the multipart submit
// that attaches the applicant's photo and identity document.
type RegistrationAPI struct {
	*Resource[models.Registration]
}

// NewRegistrationAPI builds the registration API.
func NewRegistrationAPI(client *Client) *RegistrationAPI {
	return &RegistrationAPI{Resource: NewResource[models.Registration](client, "Registration", "Registrations")}
}

// InsertWithFiles creates a registration through a multipart form, embedding
// scalar fields alongside the file parts. Files are attached synchronously in
// one request; there is no chunking or resume.
func (a *RegistrationAPI) InsertWithFiles(ctx context.Context, reg models.Registration, files []Upload) Result[models.Registration] {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"name":         reg.Name,
		"email":        reg.Email,
		"phone":        reg.Phone,
		"courseId":     strconv.FormatInt(reg.CourseID, 10),
		"registeredOn": reg.RegisteredOn.String(),
		"remarks":      reg.Remarks,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return Failure[models.Registration](fmt.Sprintf("encode registration form: %v", err), 0)
		}
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		if file.ContentType != "" {
			header.Set("Content-Type", file.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return Failure[models.Registration](fmt.Sprintf("attach %s: %v", file.Field, err), 0)
		}
		if _, err := part.Write(file.Data); err != nil {
			return Failure[models.Registration](fmt.Sprintf("attach %s: %v", file.Field, err), 0)
		}
	}

	if err := writer.Close(); err != nil {
		return Failure[models.Registration](fmt.Sprintf("finalise registration form: %v", err), 0)
	}

	resp, err := a.client.Do(ctx, http.MethodPost, "Registration/InsertRegistration", body, writer.FormDataContentType())
	if err != nil {
		return Failure[models.Registration](err.Error(), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw := new(bytes.Buffer)
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return Failure[models.Registration](fmt.Sprintf("read registration response: %v", err), resp.StatusCode)
	}
	return decodeEnvelope[models.Registration](resp.StatusCode, raw.Bytes())
}
