package sysdict

import (
	"context"
	"sync"
)

var _ RawDefiner = &rawDefinerMock{}

type rawDefinerMock struct {
	RawDefinitionFunc func(ctx context.Context, word string) (string, error)

	calls struct {
		RawDefinition []struct {
			Ctx  context.Context
			Word string
		}
	}
	lockRawDefinition sync.RWMutex
}

func (mock *rawDefinerMock) RawDefinition(ctx context.Context, word string) (string, error) {
	if mock.RawDefinitionFunc == nil {
		panic("rawDefinerMock.RawDefinitionFunc: method is nil but RawDefiner.RawDefinition was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Word string
	}{Ctx: ctx, Word: word}
	mock.lockRawDefinition.Lock()
	mock.calls.RawDefinition = append(mock.calls.RawDefinition, callInfo)
	mock.lockRawDefinition.Unlock()
	return mock.RawDefinitionFunc(ctx, word)
}

func (mock *rawDefinerMock) RawDefinitionCalls() []struct {
	Ctx  context.Context
	Word string
} {
	mock.lockRawDefinition.RLock()
	calls := mock.calls.RawDefinition
	mock.lockRawDefinition.RUnlock()
	return calls
}
