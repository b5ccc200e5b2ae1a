package marcher

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	calls []string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	require.Panics(t, func() {
		app.addResources(MockResource2{})
	}, "resources must be pointers")

	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, resource1, got)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_SystemsReceiveResources(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("shared"), &MockResource2{})

	var seen string
	app.UseSystem(System(func(r1 *MockResource1, r2 *MockResource2, cmd *Commands) {
		seen = r1.name
		r2.calls = append(r2.calls, "called")
		require.NotNil(t, cmd)
	}))

	app.Step()
	app.Step()

	r2, _ := Resource[MockResource2](app)
	assert.Equal(t, "shared", seen)
	assert.Equal(t, []string{"called", "called"}, r2.calls)
	assert.Equal(t, uint64(2), app.Ticks())
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource1) {}))

	assert.Panics(t, app.Step)
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewApp()
	trace := &MockResource2{}
	app.addResources(trace)

	record := func(name string) func(*MockResource2) {
		return func(r *MockResource2) { r.calls = append(r.calls, name) }
	}

	// registered out of order on purpose
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("pre-update")).InStage(PreUpdate))
	app.UseSystem(System(record("update-1")).InStage(Update))
	app.UseSystem(System(record("update-2")).InStage(Update))
	app.UseSystem(System(record("post-render")).InStage(PostRender))
	app.UseSystem(System(record("pre-render")).InStage(PreRender))

	app.Step()

	assert.Equal(t, []string{"pre-update", "update-1", "update-2", "pre-render", "render", "post-render"}, trace.calls)
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	trace := &MockResource2{}
	app.addResources(trace)

	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))
	app.UseSystem(System(func(r *MockResource2) { r.calls = append(r.calls, "physics") }).InStage(physics))
	app.UseSystem(System(func(r *MockResource2) { r.calls = append(r.calls, "update") }).InStage(Update))
	app.UseSystem(System(func(r *MockResource2) { r.calls = append(r.calls, "post-update") }).InStage(PostUpdate))

	app.Step()
	assert.Equal(t, []string{"update", "physics", "post-update"}, trace.calls)

	assert.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Other"}, BeforeStage(Stage{Name: "Missing"}))
	})
	assert.Panics(t, func() { app.UseStage(physics, BeforeStage(Render)) }, "duplicate stage")
	assert.PanicsWithValue(t, "Stage Nowhere doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nowhere"}))
	})
}

func TestApp_RunStopsOnExit(t *testing.T) {
	app := NewApp()
	closed := false
	app.onClose(func() { closed = true })

	app.UseSystem(System(func(cmd *Commands) {
		if app.Ticks() == 4 {
			cmd.Exit()
		}
	}))

	app.Run()

	assert.Equal(t, uint64(5), app.Ticks(), "the tick that requests exit still completes")
	assert.True(t, closed)
}

func TestApp_CloseRunsInReverse(t *testing.T) {
	app := NewApp()
	var order []int
	app.onClose(func() { order = append(order, 1) })
	app.onClose(func() { order = append(order, 2) })

	app.Close()
	app.Close()

	assert.Equal(t, []int{2, 1}, order)
}

func TestSystem_RejectsNonFunctions(t *testing.T) {
	assert.Panics(t, func() { System(42) })
	assert.Panics(t, func() { System(nil) })
}
