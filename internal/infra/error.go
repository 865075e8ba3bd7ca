package infra

import (
	"errors"

	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
)

type GatewayErrorKind string

// GatewayError classifies failures from the external collaborators (record
// store, payment processor, SMS gateway) so usecases can map them without
// depending on transport details.
type GatewayError struct {
	Kind GatewayErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

func WrapGatewayErr(kind GatewayErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return GatewayError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindNotFound        GatewayErrorKind = "NOT_FOUND"
	KindUnavailable     GatewayErrorKind = "UNAVAILABLE"
	KindAuthExpired     GatewayErrorKind = "AUTH_EXPIRED"
	KindRemoteRejected  GatewayErrorKind = "REMOTE_REJECTED"
	KindAlreadyCaptured GatewayErrorKind = "ALREADY_CAPTURED"
)
