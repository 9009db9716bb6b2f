package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

const (
	maxJSONBytes      = 1_048_576
	maxUploadBytes    = 10 << 20
	maxImagesPerForm  = 10
	imagesFormField   = "images"
	dateQueryLayout   = "2006-01-02"
	dateQueryStartKey = "startDate"
	dateQueryEndKey   = "endDate"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return decoder
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func (app *Application) readUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter", name)
	}

	return id, nil
}

// readPagination reads the page and limit query parameters. Absent values take the defaults.
func (app *Application) readPagination(r *http.Request) (domain.Pagination, error) {
	qs := r.URL.Query()

	page, err := readPositiveInt(qs.Get("page"), domain.DefaultPage)
	if err != nil {
		return domain.Pagination{}, errors.New("page must be a positive integer")
	}

	limit, err := readPositiveInt(qs.Get("limit"), domain.DefaultPageSize)
	if err != nil || limit > 100 {
		return domain.Pagination{}, errors.New("limit must be an integer between 1 and 100")
	}

	return domain.NewPagination(page, limit), nil
}

func readPositiveInt(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil || i < 1 {
		return 0, errors.New("not a positive integer")
	}

	return i, nil
}

// readDateRange reads startDate and endDate (YYYY-MM-DD) in the cinema timezone. The end date is inclusive.
func (app *Application) readDateRange(r *http.Request) (domain.DateRange, error) {
	var dateRange domain.DateRange

	qs := r.URL.Query()

	if s := qs.Get(dateQueryStartKey); s != "" {
		start, err := time.ParseInLocation(dateQueryLayout, s, app.location)
		if err != nil {
			return dateRange, fmt.Errorf("%s must be a date in YYYY-MM-DD format", dateQueryStartKey)
		}
		dateRange.Start = start
	}

	if s := qs.Get(dateQueryEndKey); s != "" {
		end, err := time.ParseInLocation(dateQueryLayout, s, app.location)
		if err != nil {
			return dateRange, fmt.Errorf("%s must be a date in YYYY-MM-DD format", dateQueryEndKey)
		}
		dateRange.End = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if !dateRange.Start.IsZero() && !dateRange.End.IsZero() && dateRange.End.Before(dateRange.Start) {
		return dateRange, fmt.Errorf("%s must not be before %s", dateQueryEndKey, dateQueryStartKey)
	}

	return dateRange, nil
}

// readMultipartForm parses a multipart body, decodes its values into dst and returns the uploaded images.
func (app *Application) readMultipartForm(w http.ResponseWriter, r *http.Request, dst any) ([]domain.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		return nil, errors.New("body must be a multipart form no larger than 10MB")
	}

	if dst != nil {
		err = formDecoder.Decode(dst, r.MultipartForm.Value)
		if err != nil {
			return nil, errors.New("form contains invalid values")
		}
	}

	return readImages(r)
}

func readImages(r *http.Request) ([]domain.Image, error) {
	files := r.MultipartForm.File[imagesFormField]
	if len(files) > maxImagesPerForm {
		return nil, fmt.Errorf("at most %d images can be uploaded at once", maxImagesPerForm)
	}

	images := make([]domain.Image, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}

		mtype := mimetype.Detect(data)
		if !strings.HasPrefix(mtype.String(), "image/") {
			return nil, fmt.Errorf("%s is not an image", header.Filename)
		}

		images = append(images, domain.Image{
			Filename:    header.Filename,
			ContentType: mtype.String(),
			Data:        data,
		})
	}

	return images, nil
}

func toPaginatedResponse[T any](data []T, metadata *domain.Metadata) api.PaginatedResponse[T] {
	return api.PaginatedResponse[T]{
		Data:       data,
		Total:      metadata.TotalRecords,
		Page:       metadata.CurrentPage,
		TotalPages: metadata.TotalPages,
	}
}

func toApiImages(images []domain.Image) []api.Image {
	result := make([]api.Image, len(images))

	for i, image := range images {
		result[i] = api.Image{
			Id:          image.ID,
			Filename:    image.Filename,
			ContentType: image.ContentType,
			CreatedAt:   image.CreatedAt,
		}
	}

	return result
}

// background runs fn in its own goroutine, recovering and logging any panic.
func (app *Application) background(r *http.Request, fn func()) {
	logger := app.contextGetLogger(r)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in background task", "panic", fmt.Sprint(err))
			}
		}()

		fn()
	}()
}
