package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	t "github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/validator"
)

// timesheetField is the form field the upload page posts the export text in.
const timesheetField = "user_input"

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// readTimesheet returns the export text from either the user_input form field
// or a plain request body. The body is capped at maxBytes.
func readTimesheet(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", bodyError(err)
		}
		return r.PostForm.Get(timesheetField), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return "", bodyError(err)
		}
		if v := r.PostFormValue(timesheetField); v != "" {
			return v, nil
		}
		// the export may also arrive as an uploaded file
		f, _, err := r.FormFile(timesheetField)
		if err != nil {
			return "", nil
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", bodyError(err)
		}
		return string(data), nil

	default:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", bodyError(err)
		}
		return string(data), nil
	}
}

// errBodyTooLarge is returned by readTimesheet when the body exceeds the cap.
var errBodyTooLarge = errors.New("request body too large")

func bodyError(err error) error {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return fmt.Errorf("%w: body must not be larger than %d bytes", errBodyTooLarge, maxBytesError.Limit)
	}
	return fmt.Errorf("failed to read request body: %w", err)
}

// readString returns a string value from the query string, or the provided
// default value if no matching key could be found.
func readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt reads an integer from the query string. Missing keys yield the
// default; values that are not integers are reported on v.
func readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

func GetCode(err error) int {
	switch {
	case IsOneOf(err, t.ErrInvalidFormat, t.ErrUnmappedLocation, t.ErrDistanceLookup):
		return http.StatusUnprocessableEntity
	case IsOneOf(err, t.ErrEmptyInput, t.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case IsOneOf(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case IsOneOf(err, t.ErrReportNotFound, t.ErrNotFound):
		return http.StatusNotFound
	case IsOneOf(err, t.ErrInvalidToken, t.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
