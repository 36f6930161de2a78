// Written by hand in the shape of MockGen output.
// Source: github.com/orizon-lang/mutagen/internal/mutate (interfaces: RandomSource)

// Package mutatemock holds hand-maintained stand-ins for the generated
// mocks a `go.uber.org/mock`-based build would normally produce via
// mockgen; kept in the tree by hand since this workspace doesn't invoke
// go generate.
package mutatemock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockRandomSource is a mock of the mutate.RandomSource interface, letting
// a test force the exact draw sequence a worked scenario describes (e.g.
// spec.md's "force IndexIn(8)=7") instead of reasoning about a seeded
// PRNG's actual output.
type MockRandomSource struct {
	ctrl     *gomock.Controller
	recorder *MockRandomSourceMockRecorder
}

// MockRandomSourceMockRecorder is the recorder for MockRandomSource.
type MockRandomSourceMockRecorder struct {
	mock *MockRandomSource
}

// NewMockRandomSource creates a new mock instance.
func NewMockRandomSource(ctrl *gomock.Controller) *MockRandomSource {
	mock := &MockRandomSource{ctrl: ctrl}
	mock.recorder = &MockRandomSourceMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRandomSource) EXPECT() *MockRandomSourceMockRecorder {
	return m.recorder
}

// ClosedRange mocks base method.
func (m *MockRandomSource) ClosedRange(lo, hi int64) int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClosedRange", lo, hi)
	ret0, _ := ret[0].(int64)

	return ret0
}

// ClosedRange indicates an expected call of ClosedRange.
func (mr *MockRandomSourceMockRecorder) ClosedRange(lo, hi interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClosedRange", reflect.TypeOf((*MockRandomSource)(nil).ClosedRange), lo, hi)
}

// IndexIn mocks base method.
func (m *MockRandomSource) IndexIn(n int) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IndexIn", n)
	ret0, _ := ret[0].(int)

	return ret0
}

// IndexIn indicates an expected call of IndexIn.
func (mr *MockRandomSourceMockRecorder) IndexIn(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IndexIn", reflect.TypeOf((*MockRandomSource)(nil).IndexIn), n)
}

// Choice mocks base method.
func (m *MockRandomSource) Choice() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Choice")
	ret0, _ := ret[0].(bool)

	return ret0
}

// Choice indicates an expected call of Choice.
func (mr *MockRandomSourceMockRecorder) Choice() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Choice", reflect.TypeOf((*MockRandomSource)(nil).Choice))
}

// TrueInOneOutOf mocks base method.
func (m *MockRandomSource) TrueInOneOutOf(n int) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TrueInOneOutOf", n)
	ret0, _ := ret[0].(bool)

	return ret0
}

// TrueInOneOutOf indicates an expected call of TrueInOneOutOf.
func (mr *MockRandomSourceMockRecorder) TrueInOneOutOf(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TrueInOneOutOf", reflect.TypeOf((*MockRandomSource)(nil).TrueInOneOutOf), n)
}

// Bytes mocks base method.
func (m *MockRandomSource) Bytes(n int) []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Bytes", n)
	ret0, _ := ret[0].([]byte)

	return ret0
}

// Bytes indicates an expected call of Bytes.
func (mr *MockRandomSourceMockRecorder) Bytes(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Bytes", reflect.TypeOf((*MockRandomSource)(nil).Bytes), n)
}
