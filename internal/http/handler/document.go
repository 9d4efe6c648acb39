package handler

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docshelf/internal/service"
)

// ListDocuments godoc
// @Summary List documents
// @Description All documents, newest first.
// @Tags documents
// @Produce json
// @Success 200 {array} model.Document
// @Failure 500 {object} errorPayload
// @Router /api/documents [get]
func ListDocuments(svc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, log, err, "failed to list documents")
		}
		return c.JSON(docs)
	}
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /api/documents/{id} [get]
func GetDocument(svc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, log, err, "failed to get document")
		}
		return c.JSON(doc)
	}
}

// UploadDocument godoc
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, JPG or PNG"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/documents [post]
func UploadDocument(svc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UploadInput

		// A non-multipart body is treated as a request without a file part.
		if form, err := c.MultipartForm(); err == nil {
			in.Title = firstValue(form.Value["title"])
			in.Description = firstValue(form.Value["description"])

			if files := form.File["file"]; len(files) > 0 {
				fh := files[0]
				f, err := fh.Open()
				if err != nil {
					return writeServiceError(c, log, err, "failed to read uploaded file")
				}
				defer f.Close()
				in.File = filePart(fh, f)
			} else if _, ok := form.Value["file"]; ok {
				// A file part with an empty filename is parsed as a plain value.
				in.File = &service.FilePart{}
			}
		}

		doc, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, log, err, "failed to upload document")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func filePart(fh *multipart.FileHeader, f multipart.File) *service.FilePart {
	return &service.FilePart{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// DownloadDocument godoc
// @Summary Download a document's file
// @Description Streams the stored file back through the API with an attachment disposition.
// @Tags documents
// @Produce application/octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Download(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, log, err, "failed to download document")
		}
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, attachment(res.Document.FileName))
		return c.Send(res.Data)
	}
}

var quotedStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func attachment(filename string) string {
	return `attachment; filename="` + quotedStringEscaper.Replace(filename) + `"`
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Removes the document's comments, its stored file and its record.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} errorPayload
// @Router /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, log, err, "failed to delete document")
		}
		return c.JSON(fiber.Map{"message": "document deleted"})
	}
}
