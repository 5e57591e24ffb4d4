package deepgram

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/lingvo-app/lingvo-core/core/capture/deepgram"

var logger = otelslog.NewLogger(scopeName)
