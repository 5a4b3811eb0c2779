package registry_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/registry"
)

func TestTypeRegistryShadowingAcrossGlobalAndChild(t *testing.T) {
	// S6 from spec.md §8: two `class Connection` declarations, one in
	// __global__ and one in namespace "net", must conflict regardless of
	// registration order.
	r := registry.NewTypeRegistry()
	r.RegisterNamespace("net", registry.GlobalNamespace)

	_, err := r.Register(registry.GlobalNamespace, "Connection", 0)
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Register("net", "Connection", 1)
	var shadow *registry.ShadowingError
	qt.Assert(t, qt.IsTrue(errors.As(err, &shadow)))
}

func TestTypeRegistryShadowingReverseOrder(t *testing.T) {
	r := registry.NewTypeRegistry()
	r.RegisterNamespace("net", registry.GlobalNamespace)

	_, err := r.Register("net", "Connection", 0)
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Register(registry.GlobalNamespace, "Connection", 1)
	var shadow *registry.ShadowingError
	qt.Assert(t, qt.IsTrue(errors.As(err, &shadow)))
}

func TestTypeRegistryResolveWalksChain(t *testing.T) {
	r := registry.NewTypeRegistry()
	r.RegisterNamespace("net", registry.GlobalNamespace)
	r.RegisterNamespace("net.tcp", "net")

	_, err := r.Register("net", "Socket", 0)
	qt.Assert(t, qt.IsNil(err))

	d, ok := r.Resolve("net.tcp", "Socket")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(d.Namespace, "net"))

	_, ok = r.Resolve(registry.GlobalNamespace, "Socket")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestTypeRegistrySiblingNamespacesDoNotShadow(t *testing.T) {
	r := registry.NewTypeRegistry()
	r.RegisterNamespace("net", registry.GlobalNamespace)
	r.RegisterNamespace("gfx", registry.GlobalNamespace)

	_, err := r.Register("net", "Buffer", 0)
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Register("gfx", "Buffer", 1)
	qt.Assert(t, qt.IsNil(err))
}

func TestFunctionRegistryOverloadResolution(t *testing.T) {
	r := registry.NewFunctionRegistry()
	a, err := r.Register(registry.GlobalNamespace, "add", []string{"int32", "int32"}, 0)
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Register(registry.GlobalNamespace, "add", []string{"float64", "float64"}, 1)
	qt.Assert(t, qt.IsNil(err))

	resolved, err := r.Resolve(registry.GlobalNamespace, "add", []string{"int32", "int32"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(resolved, a))

	site := r.MarkCalled(resolved, []string{registry.GlobalNamespace}, 42)
	qt.Assert(t, qt.IsTrue(resolved.Called))
	qt.Assert(t, qt.Equals(len(resolved.CallSites), 1))
	qt.Assert(t, qt.Not(qt.Equals(site.ID.String(), "")))
}

func TestFunctionRegistryArityMismatch(t *testing.T) {
	r := registry.NewFunctionRegistry()
	_, err := r.Register(registry.GlobalNamespace, "add", []string{"int32", "int32"}, 0)
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Resolve(registry.GlobalNamespace, "add", []string{"int32"})
	var resErr *registry.ResolutionError
	qt.Assert(t, qt.IsTrue(errors.As(err, &resErr)))
}

func TestFunctionRegistryUnresolvableArgTypesSingleCandidate(t *testing.T) {
	r := registry.NewFunctionRegistry()
	a, err := r.Register(registry.GlobalNamespace, "greet", []string{"string"}, 0)
	qt.Assert(t, qt.IsNil(err))

	resolved, err := r.Resolve(registry.GlobalNamespace, "greet", nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(resolved, a))
}
