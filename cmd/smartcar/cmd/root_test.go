package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/api"
	"github.com/cqusn/smartcar/pkg/archive"
	"github.com/cqusn/smartcar/pkg/browse"
	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/config"
	"github.com/cqusn/smartcar/pkg/di"
	"github.com/cqusn/smartcar/pkg/model"
	"github.com/cqusn/smartcar/pkg/store"
)

// testEnv is a temp directory with its own config and data file
type testEnv struct {
	dir        string
	configPath string
	dataFile   string
	container  *di.Container
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		dataFile:   filepath.Join(dir, "SmartCars.txt"),
		container:  di.NewContainer(),
	}

	cfg := config.DefaultConfig()
	cfg.DataFile = env.dataFile
	cfg.ArchiveDir = filepath.Join(dir, "archive")
	cfg.Logging.Level = "error"
	require.NoError(t, config.SaveConfig(cfg, env.configPath))
	return env
}

// run executes the command tree and returns stdout and stderr
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd(e.container)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateAndList(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "generate", "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 records")

	data, err := os.ReadFile(env.dataFile)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))

	out, _, err = env.run(t, "", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "INDEX")
	assert.Contains(t, lines[1], "cqusn100000")
	assert.Contains(t, lines[1], "学生1")
	assert.Contains(t, lines[3], "cqusn100002")
}

func TestGenerateDefaultCount(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "", "generate")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "list", "--format", "json")
	require.NoError(t, err)

	var records []model.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 10)
	assert.Equal(t, "S1009", records[9].Student.StudentID)
	assert.Len(t, records[9].Car.Chassis.Tires, 4)
}

func TestListEmptyFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.dataFile, nil, 0644))

	out, _, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found")
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "2")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "小车编号: cqusn100001")
	assert.Contains(t, out, "分配学生: S1001, 学生2")

	out, _, err = env.run(t, "", "show", "0", "--format", "json")
	require.NoError(t, err)
	var record model.Record
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "cqusn100000", record.Car.ID)

	_, _, err = env.run(t, "", "show", "2")
	assert.ErrorIs(t, err, store.ErrIndexOutOfRange)

	_, _, err = env.run(t, "", "show", "first")
	assert.Error(t, err)

	_, _, err = env.run(t, "", "show", "0", "--format", "yaml")
	assert.Error(t, err)
}

func TestBrowse(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "2")
	require.NoError(t, err)

	out, _, err := env.run(t, "p\nn\nn\nx\nq\n", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, browse.MsgFirst)
	assert.Contains(t, out, browse.MsgLast)
	assert.Contains(t, out, browse.MsgInvalid)
	assert.Contains(t, out, "小车编号: cqusn100001")
	assert.Equal(t, 5, strings.Count(out, browse.Prompt))
}

func TestBrowseMissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "q\n", "browse")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestDataFileFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.dir, "other.txt")

	_, _, err := env.run(t, "", "-f", other, "generate", "--count", "1")
	require.NoError(t, err)
	assert.FileExists(t, other)
	assert.NoFileExists(t, env.dataFile)
}

func TestMalformedInput(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(env.dataFile)
	require.NoError(t, err)
	broken := strings.Replace(string(data), ",450,", ",abc,", 1) + "not,a,record\n"
	require.NoError(t, os.WriteFile(env.dataFile, []byte(broken), 0644))

	t.Run("permissive warns", func(t *testing.T) {
		out, stderr, err := env.run(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "cqusn100001")
		assert.Contains(t, stderr, "1 field(s) defaulted to zero, 1 line(s) skipped")
		assert.Contains(t, stderr, "wheelbase")
	})

	t.Run("strict fails", func(t *testing.T) {
		_, _, err := env.run(t, "", "--strict", "list")
		require.Error(t, err)
		var fe *codec.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "wheelbase", fe.Field)
	})
}

func TestSchema(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "schema")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(codec.FieldNames())+1)
	assert.Contains(t, lines[1], "carId")
	assert.Contains(t, lines[12], "tires")

	out, _, err = env.run(t, "", "schema", "-o", "json")
	require.NoError(t, err)
	var fields []codec.Field
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, codec.Fields(), fields)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nested", "config.yaml")
	container := di.NewContainer()

	run := func(args ...string) (string, error) {
		root := NewRootCmd(container)
		var stdout bytes.Buffer
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--config", configPath, "--log-level", "error"}, args...))
		err := root.Execute()
		return stdout.String(), err
	}

	out, err := run("init", "-f", "/srv/cars.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration created")

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/srv/cars.txt", cfg.DataFile)

	_, err = run("init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run("init", "--force")
	require.NoError(t, err)
	cfg, err = config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().DataFile, cfg.DataFile)
}

func TestArchiveLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "3")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "archive", "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "3 records")

	out, _, err = env.run(t, "", "archive", "list", "--format", "json")
	require.NoError(t, err)
	var snapshots []archive.SnapshotInfo
	require.NoError(t, json.Unmarshal([]byte(out), &snapshots))
	require.Len(t, snapshots, 1)
	id := snapshots[0].ID
	assert.Equal(t, env.dataFile, snapshots[0].Source)

	// overwrite the data file, then bring the snapshot back
	_, _, err = env.run(t, "", "generate", "--count", "1")
	require.NoError(t, err)

	out, _, err = env.run(t, "", "archive", "restore", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 3 records")

	out, _, err = env.run(t, "", "list", "-o", "json")
	require.NoError(t, err)
	var records []model.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 3)

	out, _, err = env.run(t, "", "archive", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted snapshot")

	out, _, err = env.run(t, "", "archive", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots found")

	_, _, err = env.run(t, "", "archive", "restore", id)
	assert.ErrorIs(t, err, archive.ErrSnapshotNotFound)
}

type recordingStarter struct {
	source api.RecordSource
	config api.ServerConfig
}

func (s *recordingStarter) StartServer(ctx context.Context, source api.RecordSource, config api.ServerConfig, logger *zap.Logger) error {
	s.source = source
	s.config = config
	return nil
}

type recordingFactory struct {
	starter *recordingStarter
}

func (f *recordingFactory) CreateServerStarter() api.ServerStarter {
	return f.starter
}

func TestServe(t *testing.T) {
	env := newTestEnv(t)
	starter := &recordingStarter{}
	env.container.SetServerFactory(&recordingFactory{starter: starter})

	_, _, err := env.run(t, "", "generate", "--count", "4")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "serve", "--port", "9123", "--api-key", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Serving 4 records")

	require.NotNil(t, starter.source)
	assert.Equal(t, 4, starter.source.Len())
	assert.Equal(t, "127.0.0.1:9123", starter.config.Addr)
	assert.Equal(t, "secret", starter.config.APIKey)

	_, _, err = env.run(t, "", "serve", "--port", "70000")
	assert.Error(t, err)
}

func TestContainerNotInitialized(t *testing.T) {
	root := NewRootCmd(nil)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"schema"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency container not initialized")
}

func TestInvalidConfigFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte("codec:\n  policy: sloppy\n"), 0600))

	_, _, err := env.run(t, "", "schema")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestBrowseStart(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "3")
	require.NoError(t, err)

	out, _, err := env.run(t, "n\nq\n", "browse", "--start", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "小车编号: cqusn100000")
	assert.Contains(t, out, "小车编号: cqusn100002")
	assert.Contains(t, out, browse.MsgLast)

	out, _, err = env.run(t, "q\n", "browse", "--start", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "小车编号: cqusn100002")
}

func TestStrictFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "generate", "--count", "2")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(env.configPath)
	require.NoError(t, err)
	cfg.Codec.Policy = string(codec.PolicyStrict)
	require.NoError(t, config.SaveConfig(cfg, env.configPath))

	data, err := os.ReadFile(env.dataFile)
	require.NoError(t, err)
	broken := strings.Replace(string(data), ",450,", ",abc,", 1)
	require.NoError(t, os.WriteFile(env.dataFile, []byte(broken), 0644))

	_, _, err = env.run(t, "", "list")
	require.Error(t, err, "config selects strict")

	out, stderr, err := env.run(t, "", "--strict=false", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cqusn100001")
	assert.Contains(t, stderr, "1 field(s) defaulted to zero")
}
