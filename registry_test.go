package svcerr_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/svcerr"
	"github.com/jmgilman/go/svcerr/errors"
	"github.com/jmgilman/go/svcerr/svcerrtest"
)

const registryYAML = `
selectors:
  - name: MissingBucket
    codes: [NoSuchBucket]
    operations: [GetObject, ListObjectsV2]
  - name: Throttled
    codes: [Throttling, ThrottlingException, SlowDown]
    classification: RETRYABLE
  - name: Denied
    codes: [AccessDenied]
    operations: ["*"]
    classification: PERMANENT
  - name: Anything
    codes: ["*"]
`

func loadTestRegistry(t *testing.T) *svcerr.Registry {
	t.Helper()
	reg, err := svcerr.LoadRegistry(strings.NewReader(registryYAML))
	require.NoError(t, err)
	return reg
}

func TestLoadRegistry(t *testing.T) {
	reg := loadTestRegistry(t)
	assert.Equal(t, []string{"Anything", "Denied", "MissingBucket", "Throttled"}, reg.Names())

	sel, ok := reg.Lookup("MissingBucket")
	require.True(t, ok)

	caught, err := sel.Select(svcerrtest.NewError("NoSuchBucket", "", "ListObjectsV2"))
	require.NoError(t, err)
	assert.NotNil(t, caught)

	caught, err = sel.Select(svcerrtest.NewError("NoSuchBucket", "", "PutObject"))
	require.NoError(t, err)
	assert.Nil(t, caught)

	_, ok = reg.Lookup("Unknown")
	assert.False(t, ok)
}

func TestLoadRegistry_Empty(t *testing.T) {
	reg, err := svcerr.LoadRegistry(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, reg.Names())

	name, ok := reg.Match(svcerrtest.NewError("NoSuchBucket", "", "GetObject"))
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestLoadRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "malformed", doc: "selectors: [", want: "failed to decode"},
		{name: "unknown field", doc: "selectors:\n  - name: X\n    codes: [A]\n    code: B\n", want: "failed to decode"},
		{name: "missing name", doc: "selectors:\n  - codes: [A]\n", want: "name is required"},
		{name: "missing codes", doc: "selectors:\n  - name: X\n    operations: [GetObject]\n", want: "has no error codes"},
		{name: "empty code", doc: "selectors:\n  - name: X\n    codes: [\"\"]\n", want: "empty error code"},
		{name: "bad classification", doc: "selectors:\n  - name: X\n    codes: [A]\n    classification: SOMETIMES\n", want: "unknown classification"},
		{name: "duplicate", doc: "selectors:\n  - name: X\n    codes: [A]\n  - name: X\n    codes: [B]\n", want: "duplicate selector name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := svcerr.LoadRegistry(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewRegistry_EntryContext(t *testing.T) {
	_, err := svcerr.NewRegistry(
		svcerr.Entry{Name: "Good", Codes: []string{"A"}},
		svcerr.Entry{Name: "Bad"},
	)
	require.Error(t, err)

	var classified errors.Error
	require.True(t, errors.As(err, &classified))
	assert.Equal(t, 1, classified.Context()["entry"])
	assert.Equal(t, "Bad", classified.Context()["name"])
}

func TestLoadRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	reg, err := svcerr.LoadRegistryFile(path)
	require.NoError(t, err)
	assert.Len(t, reg.Names(), 4)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = svcerr.LoadRegistryFile(missing)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

	var classified errors.Error
	require.True(t, errors.As(err, &classified))
	assert.Equal(t, missing, classified.Context()["path"])
}

func TestLoadRegistryFS(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "config/selectors.yaml", []byte(registryYAML), 0o644))

	reg, err := svcerr.LoadRegistryFS(fsys, "config/selectors.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"Anything", "Denied", "MissingBucket", "Throttled"}, reg.Names())

	_, err = svcerr.LoadRegistryFS(fsys, "config/missing.yaml")
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

	require.NoError(t, util.WriteFile(fsys, "config/bad.yaml", []byte("selectors:\n  - name: X\n"), 0o644))
	_, err = svcerr.LoadRegistryFS(fsys, "config/bad.yaml")
	require.Error(t, err)

	var classified errors.Error
	require.True(t, errors.As(err, &classified))
	assert.Equal(t, "config/bad.yaml", classified.Context()["path"])
}

func TestRegistry_Match(t *testing.T) {
	reg := loadTestRegistry(t)

	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{name: "first entry", err: svcerrtest.NewError("NoSuchBucket", "", "GetObject"), want: "MissingBucket", ok: true},
		{name: "falls through to wildcard", err: svcerrtest.NewError("NoSuchBucket", "", "PutObject"), want: "Anything", ok: true},
		{name: "throttled", err: svcerrtest.NewError("SlowDown", "", "PutObject"), want: "Throttled", ok: true},
		{name: "any operation", err: svcerrtest.NewError("AccessDenied", "", "DeleteObject"), want: "Denied", ok: true},
		{name: "not a service error", err: errors.New(errors.CodeNotFound, "x"), ok: false},
		{name: "nil", err: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := reg.Match(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestRegistry_Classify(t *testing.T) {
	reg := loadTestRegistry(t)

	tests := []struct {
		name string
		err  error
		want errors.ErrorClassification
	}{
		{
			name: "declared retryable",
			err:  svcerrtest.NewError("Throttling", "", "DescribeStacks"),
			want: errors.ClassificationRetryable,
		},
		{
			name: "declared permanent beats status",
			err:  svcerrtest.NewError("AccessDenied", "", "GetObject", svcerrtest.WithHTTPStatusCode(503)),
			want: errors.ClassificationPermanent,
		},
		{
			name: "derived from status",
			err:  svcerrtest.NewError("NoSuchBucket", "", "GetObject", svcerrtest.WithHTTPStatusCode(500)),
			want: errors.ClassificationRetryable,
		},
		{
			name: "derived permanent",
			err:  svcerrtest.NewError("NoSuchBucket", "", "GetObject", svcerrtest.WithHTTPStatusCode(404)),
			want: errors.ClassificationPermanent,
		},
		{
			name: "plain error",
			err:  errors.New(errors.CodeTimeout, "timed out"),
			want: errors.ClassificationRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Classify(tt.err))
		})
	}
}

func TestRegistry_ClassifyUsesFirstMatch(t *testing.T) {
	reg, err := svcerr.NewRegistry(
		svcerr.Entry{Name: "MissingBucket", Codes: []string{"NoSuchBucket"}},
		svcerr.Entry{Name: "Everything", Codes: []string{svcerr.Wildcard}, Classification: errors.ClassificationRetryable},
	)
	require.NoError(t, err)

	missing := svcerrtest.NewError("NoSuchBucket", "", "GetObject", svcerrtest.WithHTTPStatusCode(404))
	name, ok := reg.Match(missing)
	require.True(t, ok)
	assert.Equal(t, "MissingBucket", name)
	assert.Equal(t, svcerr.Classification(missing), reg.Classify(missing))
	assert.Equal(t, errors.ClassificationPermanent, reg.Classify(missing))

	other := svcerrtest.NewError("InternalError", "", "GetObject", svcerrtest.WithHTTPStatusCode(400))
	assert.Equal(t, errors.ClassificationRetryable, reg.Classify(other))
}
