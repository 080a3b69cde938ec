package binding

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retryLayer struct {
	maxTimes int
	jitter   bool
}

func retryConstructor() Constructor {
	return Constructor{
		Module: "example.com/app/layers",
		Name:   "RetryLayer",
		Kind:   KindLayer,
		Doc:    "Create a new RetryLayer.",
		Params: []Param{
			{Name: "jitter", Type: "bool", Default: "False"},
			{Name: "max_times", Type: "int", Default: "None"},
		},
		New: func(kwargs Kwargs) (any, error) {
			jitter, err := Bool(kwargs, "jitter")
			if err != nil {
				return nil, err
			}
			maxTimes, err := Int[int](kwargs, "max_times")
			if err != nil {
				return nil, err
			}
			l := retryLayer{jitter: jitter}
			if maxTimes != nil {
				l.maxTimes = *maxTimes
			}
			return &l, nil
		},
	}
}

func s3Constructor() Constructor {
	return Constructor{
		Module: "example.com/app/services",
		Name:   "S3Service",
		Kind:   KindService,
		Params: []Param{{Name: "bucket", Type: "str", Required: true}},
		New: func(kwargs Kwargs) (any, error) {
			bucket, err := String(kwargs, "bucket")
			if err != nil {
				return nil, err
			}
			if bucket == nil {
				return nil, MissingArgument("S3Service", "bucket")
			}
			return *bucket, nil
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(retryConstructor()))

	c, ok := reg.Lookup("RetryLayer")
	require.True(t, ok)
	assert.Equal(t, "example.com/app/layers", c.Module)
	assert.Equal(t, KindLayer, c.Kind)

	_, ok = reg.Lookup("TimeoutLayer")
	assert.False(t, ok)

	p, ok := c.Param("max_times")
	require.True(t, ok)
	assert.Equal(t, "int", p.Type)
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register(Constructor{New: retryConstructor().New}))
	assert.Error(t, reg.Register(Constructor{Name: "RetryLayer"}))

	require.NoError(t, reg.Register(retryConstructor()))
	err := reg.Register(retryConstructor())
	assert.ErrorIs(t, err, ErrDuplicateConstructor)

	assert.Panics(t, func() { reg.MustRegister(retryConstructor()) })
}

func TestRegistry_SameNameInTwoModules(t *testing.T) {
	reg := NewRegistry()
	first := retryConstructor()
	first.Module = "example.com/a/bindings"
	second := retryConstructor()
	second.Module = "example.com/b/bindings"
	second.New = func(Kwargs) (any, error) { return "b", nil }

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))
	assert.Len(t, reg.All(), 2)

	_, err := reg.Resolve("RetryLayer")
	assert.ErrorIs(t, err, ErrAmbiguousConstructor)
	assert.Contains(t, err.Error(), "example.com/a/bindings:RetryLayer, example.com/b/bindings:RetryLayer")
	_, ok := reg.Lookup("RetryLayer")
	assert.False(t, ok)

	c, ok := reg.Lookup("example.com/b/bindings:RetryLayer")
	require.True(t, ok)
	assert.Equal(t, "example.com/b/bindings", c.Module)

	v, err := reg.New(second.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = reg.New("RetryLayer", nil)
	assert.ErrorIs(t, err, ErrAmbiguousConstructor)

	_, err = reg.New("example.com/c/bindings:RetryLayer", nil)
	assert.ErrorIs(t, err, ErrUnknownConstructor)
}

func TestRegistry_AllIsOrdered(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(s3Constructor())
	timeout := retryConstructor()
	timeout.Name = "TimeoutLayer"
	reg.MustRegister(timeout)
	reg.MustRegister(retryConstructor())

	var names []string
	for _, c := range reg.All() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"RetryLayer", "TimeoutLayer", "S3Service"}, names)

	assert.Len(t, reg.Kind(KindService), 1)
	assert.Len(t, reg.Filter(HasPrefix("example.com/app/layers")), 2)
	assert.Empty(t, reg.Filter(HasPrefix("github.com/")))
}

func TestRegistry_New(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(retryConstructor())
	reg.MustRegister(s3Constructor())

	t.Run("builds with kwargs", func(t *testing.T) {
		v, err := reg.New("RetryLayer", Kwargs{"jitter": true, "max_times": float64(3)})
		require.NoError(t, err)
		assert.Equal(t, &retryLayer{maxTimes: 3, jitter: true}, v)
	})

	t.Run("defaults when empty", func(t *testing.T) {
		v, err := reg.New("RetryLayer", nil)
		require.NoError(t, err)
		assert.Equal(t, &retryLayer{}, v)
	})

	t.Run("unknown constructor", func(t *testing.T) {
		_, err := reg.New("NopLayer", nil)
		assert.ErrorIs(t, err, ErrUnknownConstructor)
	})

	t.Run("unexpected kwargs are sorted", func(t *testing.T) {
		_, err := reg.New("RetryLayer", Kwargs{"zeta": 1, "alpha": 2})
		require.ErrorIs(t, err, ErrUnexpectedArgument)
		assert.Equal(t, "RetryLayer(): unexpected keyword argument: alpha, zeta", err.Error())
	})

	t.Run("missing required argument", func(t *testing.T) {
		_, err := reg.New("S3Service", Kwargs{})
		require.ErrorIs(t, err, ErrMissingArgument)
		assert.Equal(t, "S3Service(): missing required argument: bucket", err.Error())
	})

	t.Run("invalid argument names the constructor", func(t *testing.T) {
		_, err := reg.New("RetryLayer", Kwargs{"max_times": "three"})
		require.ErrorIs(t, err, ErrInvalidArgument)

		var argErr *ArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, "RetryLayer", argErr.Constructor)
		assert.Equal(t, "max_times", argErr.Argument)
	})
}

func TestArgumentError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("time: invalid duration \"soon\"")
	err := InvalidArgument("timeout", cause)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid argument: timeout: time: invalid duration \"soon\"", err.Error())
}
