package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mazerepair/internal/app"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/mazerepair/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestStartAll_StartsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockLifecycle(ctrl)
	second := mocks.NewMockLifecycle(ctrl)

	gomock.InOrder(
		first.EXPECT().Start(gomock.Any()).Return(nil),
		second.EXPECT().Start(gomock.Any()).Return(nil),
	)

	started, err := app.StartAll(t.Context(), []ports.Lifecycle{first, second})
	require.NoError(t, err)
	assert.Equal(t, []ports.Lifecycle{first, second}, started)
}

func TestStartAll_RollsBackInReverse(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockLifecycle(ctrl)
	second := mocks.NewMockLifecycle(ctrl)
	third := mocks.NewMockLifecycle(ctrl)
	never := mocks.NewMockLifecycle(ctrl)

	bindErr := errors.New("address already in use")
	third.EXPECT().Name().Return("http").AnyTimes()

	gomock.InOrder(
		first.EXPECT().Start(gomock.Any()).Return(nil),
		second.EXPECT().Start(gomock.Any()).Return(nil),
		third.EXPECT().Start(gomock.Any()).Return(bindErr),
		second.EXPECT().Stop(gomock.Any()).Return(nil),
		first.EXPECT().Stop(gomock.Any()).Return(nil),
	)

	started, err := app.StartAll(t.Context(), []ports.Lifecycle{first, second, third, never})
	require.Error(t, err)
	assert.Nil(t, started)
	require.ErrorIs(t, err, bindErr)
	assert.Contains(t, err.Error(), "failed to start component")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "http", zErr.Metadata()["component"])
}

func TestStartAll_ReportsRollbackFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockLifecycle(ctrl)
	second := mocks.NewMockLifecycle(ctrl)

	startErr := errors.New("start failed")
	stopErr := errors.New("stop failed")
	second.EXPECT().Name().Return("grpc").AnyTimes()

	gomock.InOrder(
		first.EXPECT().Start(gomock.Any()).Return(nil),
		second.EXPECT().Start(gomock.Any()).Return(startErr),
		first.EXPECT().Stop(gomock.Any()).Return(stopErr),
	)

	_, err := app.StartAll(t.Context(), []ports.Lifecycle{first, second})
	require.ErrorIs(t, err, startErr)
	require.ErrorIs(t, err, stopErr)
}

func TestStopAll_StopsEveryComponent(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockLifecycle(ctrl)
	second := mocks.NewMockLifecycle(ctrl)
	third := mocks.NewMockLifecycle(ctrl)

	errSecond := errors.New("second")

	gomock.InOrder(
		third.EXPECT().Stop(gomock.Any()).Return(nil),
		second.EXPECT().Stop(gomock.Any()).Return(errSecond),
		first.EXPECT().Stop(gomock.Any()).Return(nil),
	)

	err := app.StopAll(t.Context(), []ports.Lifecycle{first, second, third})
	require.ErrorIs(t, err, errSecond)
}

func TestStopAll_Empty(t *testing.T) {
	require.NoError(t, app.StopAll(t.Context(), nil))
}
