package main

import (
	"errors"
	"fmt"
	"net/http"
)

// InputKind says which part of the client's request was malformed.
type InputKind int

const (
	InputQuery InputKind = iota
	InputReferer
	InputForm
)

// InputError is returned when the browser sent something we can't use.
type InputError struct {
	Kind InputKind
	Err  error
}

func (e *InputError) Error() string {
	var what string
	switch e.Kind {
	case InputQuery:
		what = "invalid query string"
	case InputReferer:
		what = "unusable referer"
	case InputForm:
		what = "invalid form"
	}
	if e.Err == nil {
		return what
	}
	return fmt.Sprintf("%s: %v", what, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// UpstreamKind classifies a failed call to the API server.
type UpstreamKind int

const (
	// UpstreamConnection means the API server could not be reached at all.
	UpstreamConnection UpstreamKind = iota
	// UpstreamStatus means the API server answered with a non-2xx status.
	UpstreamStatus
	// UpstreamDecode means the response did not match the expected shape.
	UpstreamDecode
)

// UpstreamError wraps every failure returned by UpstreamClient.
type UpstreamError struct {
	Op         string
	Kind       UpstreamKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamConnection:
		return fmt.Sprintf("%s: unable to reach api server: %v", e.Op, e.Err)
	case UpstreamStatus:
		return fmt.Sprintf("%s: api server returned http status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: unable to parse api response: %v", e.Op, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var errRateLimited = errors.New("too many score submissions")

// errorPage is the rendered form of a failed request.
type errorPage struct {
	Status  int
	Message string
	Detail  string
}

// classify maps err onto the status code and Danish explanation shown to
// the user. Unknown errors are treated as bugs and their text is shown so
// it can be reported.
func classify(err error) errorPage {
	var inputErr *InputError
	var upstreamErr *UpstreamError

	switch {
	case errors.As(err, &inputErr):
		switch inputErr.Kind {
		case InputReferer:
			return errorPage{
				Status:  http.StatusBadRequest,
				Message: "Der er et problem med din browsers referrer policy",
			}
		case InputForm:
			return errorPage{
				Status:  http.StatusBadRequest,
				Message: "Dataen du har indsendt er ikke i det rigtige format",
			}
		default:
			return errorPage{
				Status:  http.StatusBadRequest,
				Message: "Der er en fejl i URL'en. Tjek at du har stavet den rigtigt og at du har fået det rigtige link. URL'en burde ende med:",
				Detail:  "....org/u?u=brugernavn",
			}
		}
	case errors.As(err, &upstreamErr):
		switch upstreamErr.Kind {
		case UpstreamConnection:
			return errorPage{
				Status:  http.StatusServiceUnavailable,
				Message: "Bullseyegolf light kunne ikke kommunikere med API serveren. Prøv igen senere.",
			}
		case UpstreamStatus:
			return errorPage{
				Status:  http.StatusBadGateway,
				Message: fmt.Sprintf("API serveren svarede med en fejl (status %d). Fejlen ligger hos API serveren, ikke hos Bullseyegolf light.", upstreamErr.StatusCode),
			}
		}
	case errors.Is(err, errRateLimited):
		return errorPage{
			Status:  http.StatusTooManyRequests,
			Message: "Du har indsendt for mange noteringer på kort tid. Vent lidt og prøv igen.",
		}
	}

	return errorPage{
		Status:  http.StatusInternalServerError,
		Message: "Der skete en fejl på serveren, dette er en bug. Rapporter fejlen med URL'en til denne side og denne information",
		Detail:  err.Error(),
	}
}
