package ledger

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	header, err := csv.NewReader(strings.NewReader(string(data))).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "date", "amount", "type", "lot", "symbol", "order", "platform"}, header)
}

func TestCSVAppendRow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	require.NoError(t, j.Append(context.Background(), rec("T1", "01/02/2024", "300.00")))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(data)))
	_, err = reader.Read() // header
	require.NoError(t, err)
	row, err := reader.Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"T1", "01/02/2024", "300", "Profit", "0.01", "XAUUSD", "Buy", "MT5"}, row)
}

func TestCSVRejectsForeignFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	_, err := NewCSV(path)
	assert.ErrorContains(t, err, "unexpected header")
}

func TestCSVEmptyFileIsInitialized(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	j, err := NewCSV(path)
	require.NoError(t, err)
	defer j.Close()

	recs, err := j.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCSVMalformedAmount(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	body := strings.Join(StoreColumns, ",") + "\nT1,01/02/2024,abc,Loss,0.01,XAUUSD,Buy,MT5\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	j, err := NewCSV(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.ReadAll(context.Background())
	assert.ErrorContains(t, err, "ledger line 2")
}

func TestCSVClearLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "ledger.csv"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Append(context.Background(), rec("T1", "01/02/2024", "1")))
	require.NoError(t, j.ClearAll(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.csv", entries[0].Name())
}

func TestCSVDropsTornLastRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	header := strings.Join(StoreColumns, ",") + "\n"
	kept := "K1,01/01/2024,10,Profit,0.01,XAUUSD,Buy,MT5\n"
	require.NoError(t, os.WriteFile(path, []byte(header+kept+"T1,01/02/20"), 0o644))

	j, err := NewCSV(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Append(ctx, rec("T2", "01/02/2024", "5")))

	recs, err := j.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "K1", recs[0].ID)
	assert.True(t, rec("T2", "01/02/2024", "5").Equal(recs[1]))
}

func TestCSVTornHeaderIsReinitialized(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,date,amo"), 0o644))

	j, err := NewCSV(path)
	require.NoError(t, err)
	defer j.Close()

	recs, err := j.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}
