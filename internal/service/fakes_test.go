package service

import (
	"context"

	"github.com/mathieu-neron/tubegate/internal/model"
)

type fakeSearch struct {
	videos []model.SearchVideo
	err    error
	calls  int
}

func (f *fakeSearch) Search(_ context.Context, _ string) ([]model.SearchVideo, error) {
	f.calls++
	return f.videos, f.err
}

type fakeFormats struct {
	info  *model.VideoInfo
	err   error
	calls int
}

func (f *fakeFormats) GetFormats(_ context.Context, _ string) (*model.VideoInfo, error) {
	f.calls++
	return f.info, f.err
}
