package gcloud

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

var ErrImageNotFound = errors.New("image not found")
var ErrNoExternalAddress = errors.New("no external address")

const reasonResourceNotReady = "resourceNotReady"

// OperationFailedError is returned when a long-running operation finished
// with an error payload.
type OperationFailedError struct {
	Op  *compute.Operation
	Err *compute.OperationError
}

func (e *OperationFailedError) Error() string {
	items := make([]string, 0, len(e.Err.Errors))
	for _, item := range e.Err.Errors {
		items = append(items, fmt.Sprintf("%s: %s", item.Code, item.Message))
	}
	return fmt.Sprintf("operation %s failed: %s", e.Op.Name, strings.Join(items, "; "))
}

func apiError(err error) (*googleapi.Error, bool) {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr, true
	}
	return nil, false
}

func errorReason(gErr *googleapi.Error) string {
	if len(gErr.Errors) == 0 {
		return ""
	}
	return gErr.Errors[0].Reason
}

// IsNotFound reports whether err is a 404 returned by the provider.
func IsNotFound(err error) bool {
	gErr, ok := apiError(err)
	return ok && gErr.Code == http.StatusNotFound
}

func IsResourceNotReady(err error) bool {
	gErr, ok := apiError(err)
	return ok && errorReason(gErr) == reasonResourceNotReady
}
