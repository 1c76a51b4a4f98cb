package store

import (
	"errors"

	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
)

var errFailing = apierr.Transport(errors.New("backend unavailable"))
