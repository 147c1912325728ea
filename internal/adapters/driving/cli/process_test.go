package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire-labs/edix/internal/core/services"
)

const sample850 = "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *210101*1253*U*00401*000000001*0*P*>~" +
	"GS*PO*SENDERID*RECEIVERID*20210101*1253*1*X*004010~" +
	"ST*850*0001~" +
	"BEG*00*SA*PO123456**20210101~" +
	"PO1*1*10*EA*25.50**VP*SKU12345*PD*Widget A~" +
	"SE*4*0001~" +
	"GE*1*1~" +
	"IEA*1*000000001~"

// withEngine wires a real engine for the duration of one test.
func withEngine(t *testing.T) {
	t.Helper()
	old := engine
	engine = services.NewEngine(services.NewMessageTypeRegistry(), nil)
	t.Cleanup(func() { engine = old })
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.edi")
	require.NoError(t, os.WriteFile(path, []byte(sample850), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestProcessCmd_Use(t *testing.T) {
	assert.Equal(t, "process [file]", processCmd.Use)
}

func TestProcessCmd_FromFile(t *testing.T) {
	withEngine(t)

	out, err := execute(t, "process", writeSample(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Status: SUCCESS")
	assert.Contains(t, out, "PO123456")
	assert.Contains(t, out, "1 line items")
}

func TestProcessCmd_FromStdin(t *testing.T) {
	withEngine(t)
	rootCmd.SetIn(strings.NewReader(sample850))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := execute(t, "process")

	require.NoError(t, err)
	assert.Contains(t, out, "Status: SUCCESS")
}

func TestProcessCmd_JSON(t *testing.T) {
	withEngine(t)
	t.Cleanup(func() { processJSON = false })

	out, err := execute(t, "process", "--json", writeSample(t))

	require.NoError(t, err)
	assert.Contains(t, out, `"status": "SUCCESS"`)
	assert.Contains(t, out, `"messageType": "850"`)
	assert.Contains(t, out, `"PONumber": "PO123456"`)
}

func TestProcessCmd_TypeHint(t *testing.T) {
	withEngine(t)
	t.Cleanup(func() { processType = "" })

	out, err := execute(t, "process", "--type", "999", writeSample(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Status: UNSUPPORTED_MESSAGE_TYPE")
}

func TestProcessCmd_MissingFile(t *testing.T) {
	withEngine(t)

	_, err := execute(t, "process", filepath.Join(t.TempDir(), "absent.edi"))
	assert.Error(t, err)
}

func TestProcessCmd_NoEngine(t *testing.T) {
	old := engine
	engine = nil
	t.Cleanup(func() { engine = old })

	_, err := execute(t, "process", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine not configured")
}

func TestValidateCmd_ReportsDetectedVersionAndType(t *testing.T) {
	withEngine(t)

	out, err := execute(t, "validate", writeSample(t))

	require.NoError(t, err)
	assert.Contains(t, out, "Status:  SUCCESS")
	assert.Contains(t, out, "Version: 00401")
	assert.Contains(t, out, "Type:    850")
}

func TestValidateCmd_JSON(t *testing.T) {
	withEngine(t)
	t.Cleanup(func() { validateJSON = false })

	out, err := execute(t, "validate", "--json", writeSample(t))

	require.NoError(t, err)
	assert.Contains(t, out, `"detectedVersion": "00401"`)
}

func TestTypesCmd_ListsRegisteredTypes(t *testing.T) {
	withEngine(t)

	out, err := execute(t, "types")

	require.NoError(t, err)
	assert.Contains(t, out, "850  Purchase Order")
	assert.Contains(t, out, "810  Invoice")
	assert.Contains(t, out, "856  Advance Ship Notice")
	assert.Contains(t, out, "997  Functional Acknowledgment")
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	t.Cleanup(func() { version = originalVersion })

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "edix version test-version-1.0.0")
}
