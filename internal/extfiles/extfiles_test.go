package extfiles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MikelBai/Bank-management-application/internal/extfiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.txt")
	w := extfiles.NewAlertWriter(path)

	w.NotifyLowStock([]int{50, 5})
	w.NotifyLowStock([]int{10})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Need to restock:\n$50 bills.\n$5 bills.\nNeed to restock:\n$10 bills.\n", string(data))
}

func TestAlertWriterBadPathDoesNotPanic(t *testing.T) {
	w := extfiles.NewAlertWriter(filepath.Join(t.TempDir(), "missing", "alerts.txt"))

	assert.NotPanics(t, func() {
		w.NotifyLowStock([]int{50})
	})
}

func TestOutgoingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outgoing.txt")
	w := extfiles.NewOutgoingWriter(path)

	require.NoError(t, w.RecordOutgoing("bill payment of $60.50 from account abc to Hydro One"))
	require.NoError(t, w.RecordOutgoing("bill payment of $10.00 from account abc to Telus"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"bill payment of $60.50 from account abc to Hydro One\nbill payment of $10.00 from account abc to Telus\n",
		string(data))
}

func TestOutgoingWriterBadPath(t *testing.T) {
	w := extfiles.NewOutgoingWriter(filepath.Join(t.TempDir(), "missing", "outgoing.txt"))

	assert.Error(t, w.RecordOutgoing("line"))
}
