package observability

import (
	"testing"

	"github.com/conroy-cheers/ocsd/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordProtectedRead(true)
	RecordProtectedRead(false)
	RecordPublish(true)
	RecordTornRetry("read")
	RecordTornRetry("write")
}
