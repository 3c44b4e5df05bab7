package domain

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_StableValues(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		identity int
		name     string
	}{
		{NoFileFound, 0, "NoFileFound"},
		{Serialization, 1, "Serialization"},
		{Deserialization, 2, "Deserialization"},
		{InvalidFileName, 3, "InvalidFileName"},
		{CouldNotAccessTemporaryDirectory, 4, "CouldNotAccessTemporaryDirectory"},
		{CouldNotAccessUserDomainMask, 5, "CouldNotAccessUserDomainMask"},
		{CouldNotAccessSharedContainer, 6, "CouldNotAccessSharedContainer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.identity, Identity(tt.category))
			assert.Equal(t, tt.name, tt.category.String())
		})
	}
}

func TestCategories(t *testing.T) {
	all := Categories()
	require.Len(t, all, 7)
	for i, c := range all {
		assert.Equal(t, i, Identity(c))
	}

	// returned slice is a copy
	all[0] = CouldNotAccessSharedContainer
	assert.Equal(t, NoFileFound, Categories()[0])
}

func TestCategoryFrom_RoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, ok := CategoryFrom(Identity(c))
		require.True(t, ok)
		assert.Equal(t, c, got)
		assert.Equal(t, Identity(c), Identity(got))
	}
}

func TestCategoryFrom_OutsideSet(t *testing.T) {
	got, ok := CategoryFrom(2)
	require.True(t, ok)
	assert.Equal(t, Deserialization, got)

	for _, n := range []int{-1, 7, 99, -1 << 31, 1 << 30} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := CategoryFrom(n)
				assert.False(t, ok)
			})
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("InvalidFileName")
	require.True(t, ok)
	assert.Equal(t, InvalidFileName, c)

	c, ok = ParseCategory("nofilefound")
	require.True(t, ok)
	assert.Equal(t, NoFileFound, c)

	_, ok = ParseCategory("TooManyFilesFound")
	assert.False(t, ok)
}

func TestErrorCategory_Class(t *testing.T) {
	assert.Equal(t, ClassExistence, NoFileFound.Class())
	assert.Equal(t, ClassConversion, Serialization.Class())
	assert.Equal(t, ClassConversion, Deserialization.Class())
	assert.Equal(t, ClassConversion, InvalidFileName.Class())
	assert.Equal(t, ClassEnvironmentAccess, CouldNotAccessTemporaryDirectory.Class())
	assert.Equal(t, ClassEnvironmentAccess, CouldNotAccessUserDomainMask.Class())
	assert.Equal(t, ClassEnvironmentAccess, CouldNotAccessSharedContainer.Class())
	assert.Equal(t, ClassUnknown, ErrorCategory(42).Class())
}

func TestErrorCategory_Unknown(t *testing.T) {
	c := ErrorCategory(42)
	assert.Equal(t, "Unknown(42)", c.String())
	assert.Empty(t, c.Meaning())
	assert.False(t, c.Retryable())
}

func TestClassify(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		err := Classify(NoFileFound, "report.json")
		assert.Equal(t, 0, err.Identity())
		assert.Equal(t, "report.json", err.Context)
		assert.Equal(t, NoFileFound, err.Category)
		assert.NotEmpty(t, err.FailureReason)
		assert.NotEmpty(t, err.RecoverySuggestion)
	})

	t.Run("every category with empty context", func(t *testing.T) {
		for _, c := range Categories() {
			err := Classify(c, "")
			require.NotNil(t, err)
			assert.Equal(t, c, err.Category)
			assert.Empty(t, err.Context)
		}
	})

	t.Run("unknown category still builds", func(t *testing.T) {
		err := Classify(ErrorCategory(99), "x")
		require.NotNil(t, err)
		assert.Equal(t, 99, err.Identity())
		assert.Empty(t, err.FailureReason)
	})

	t.Run("fresh values", func(t *testing.T) {
		a := Classify(Serialization, "a")
		b := Classify(Serialization, "a")
		assert.NotSame(t, a, b)
		a.WithDescription("changed")
		assert.Empty(t, b.Description)
	})
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"bare", Classify(NoFileFound, ""), "DiskErrorDomain(0) NoFileFound"},
		{"context", Classify(NoFileFound, "report.json"), "DiskErrorDomain(0) NoFileFound: report.json"},
		{
			"description wins over context",
			Classify(InvalidFileName, ":").WithDescription("bad name"),
			"DiskErrorDomain(3) InvalidFileName: bad name",
		},
		{
			"with cause",
			Classify(CouldNotAccessTemporaryDirectory, "/tmp").WithCause(errors.New("denied")),
			"DiskErrorDomain(4) CouldNotAccessTemporaryDirectory: /tmp: denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestError_IsAndAs(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("load settings: %w", Classify(CouldNotAccessSharedContainer, "/group").WithCause(cause))

	assert.True(t, errors.Is(err, Classify(CouldNotAccessSharedContainer, "")))
	assert.False(t, errors.Is(err, Classify(CouldNotAccessUserDomainMask, "")))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrUnknownCategory))

	c, ok := CategoryOf(err)
	require.True(t, ok)
	assert.Equal(t, CouldNotAccessSharedContainer, c)

	_, ok = CategoryOf(errors.New("plain"))
	assert.False(t, ok)
	_, ok = CategoryOf(nil)
	assert.False(t, ok)
}

func TestError_Report(t *testing.T) {
	err := Classify(Deserialization, "posts.json").
		WithDescription("could not decode").
		WithFailureReason("type mismatch").
		WithRecoverySuggestion("use the stored type").
		WithCause(errors.New("unexpected end of JSON input"))

	report := err.Report()
	assert.Equal(t, ErrorReport{
		Domain:             ErrorDomain,
		Identity:           2,
		Name:               "Deserialization",
		Class:              ClassConversion,
		Context:            "posts.json",
		Description:        "could not decode",
		FailureReason:      "type mismatch",
		RecoverySuggestion: "use the stored type",
		Cause:              "unexpected end of JSON input",
	}, report)
}

func TestDescribe(t *testing.T) {
	info, ok := Describe(CouldNotAccessUserDomainMask)
	require.True(t, ok)
	assert.Equal(t, 5, info.Identity)
	assert.Equal(t, "CouldNotAccessUserDomainMask", info.Name)
	assert.Equal(t, ClassEnvironmentAccess, info.Class)
	assert.Equal(t, "The per-user storage root is unavailable", info.Meaning)
	assert.False(t, info.Retryable)

	_, ok = Describe(ErrorCategory(-1))
	assert.False(t, ok)
}

func TestLocation_AccessCategory(t *testing.T) {
	tests := []struct {
		location Location
		expected ErrorCategory
	}{
		{LocationDocuments, CouldNotAccessUserDomainMask},
		{LocationCaches, CouldNotAccessUserDomainMask},
		{LocationApplicationSupport, CouldNotAccessUserDomainMask},
		{LocationTemporary, CouldNotAccessTemporaryDirectory},
		{LocationSharedContainer, CouldNotAccessSharedContainer},
	}

	for _, tt := range tests {
		t.Run(string(tt.location), func(t *testing.T) {
			got, ok := tt.location.AccessCategory()
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := Location("desktop").AccessCategory()
	assert.False(t, ok)
}

func TestClassify_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, _ := CategoryFrom(i % 7)
			err := Classify(c, fmt.Sprint(i))
			assert.Equal(t, i%7, err.Identity())
			assert.Equal(t, fmt.Sprint(i), err.Context)
		}(i)
	}
	wg.Wait()
}
