package masterdata

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/mocks"
	"order_ingest/internal/models"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("без userId используется fallback без обращения к API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)

		r := NewResolver(source, 0, nil)
		got := r.Resolve(ctx, "", "x@masked.ct.vtex.com.br")
		require.NotNil(t, got)
		assert.Equal(t, "x@masked.ct.vtex.com.br", *got)

		assert.Nil(t, r.Resolve(ctx, "", ""))
	})

	t.Run("найден по userId, второй вызов из кэша", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		source.EXPECT().SearchProfiles(gomock.Any(), "userId=u1").
			Return([]models.Profile{{ID: "1", UserID: "u1", Email: "real@example.com"}}, nil).
			Times(1)

		r := NewResolver(source, 0, nil)
		first := r.Resolve(ctx, "u1", "masked@ct.vtex.com.br")
		second := r.Resolve(ctx, "u1", "masked@ct.vtex.com.br")

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, "real@example.com", *first)
		assert.Equal(t, "real@example.com", *second)
	})

	t.Run("поиск по id после пустого userId", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		gomock.InOrder(
			source.EXPECT().SearchProfiles(gomock.Any(), "userId=u2").Return(nil, nil),
			source.EXPECT().SearchProfiles(gomock.Any(), "id=u2").
				Return([]models.Profile{{ID: "u2", Email: "by-id@example.com"}}, nil),
		)

		r := NewResolver(source, 0, nil)
		got := r.Resolve(ctx, "u2", "")
		require.NotNil(t, got)
		assert.Equal(t, "by-id@example.com", *got)
	})

	t.Run("поиск по e-mail, затем fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		gomock.InOrder(
			source.EXPECT().SearchProfiles(gomock.Any(), "userId=u3").Return(nil, nil),
			source.EXPECT().SearchProfiles(gomock.Any(), "id=u3").Return([]models.Profile{}, nil),
			source.EXPECT().SearchProfiles(gomock.Any(), "email=fallback@example.com").Return(nil, nil),
		)

		r := NewResolver(source, 0, nil)
		got := r.Resolve(ctx, "u3", "fallback@example.com")
		require.NotNil(t, got)
		assert.Equal(t, "fallback@example.com", *got, "при отсутствии профиля возвращается fallback")
	})

	t.Run("ошибка API кэшируется как отсутствие результата", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		source.EXPECT().SearchProfiles(gomock.Any(), "userId=u4").
			Return(nil, errors.New("VTEX 500 Internal Server Error - boom")).
			Times(1)

		r := NewResolver(source, 0, nil)
		assert.Nil(t, r.Resolve(ctx, "u4", ""))
		assert.Nil(t, r.Resolve(ctx, "u4", ""), "повторный вызов не обращается к API")

		got := r.Resolve(ctx, "u4", "fb@example.com")
		require.NotNil(t, got)
		assert.Equal(t, "fb@example.com", *got, "fallback применяется поверх кэша")
	})

	t.Run("конкурентные вызовы делают один запрос", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		source.EXPECT().SearchProfiles(gomock.Any(), "userId=u5").
			Return([]models.Profile{{Email: "c@example.com"}}, nil).
			Times(1)

		r := NewResolver(source, 0, nil)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got := r.Resolve(ctx, "u5", "")
				if assert.NotNil(t, got) {
					assert.Equal(t, "c@example.com", *got)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, r.CacheSize())
	})

	t.Run("истекший результат запрашивается заново", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mocks.NewMockProfileSource(ctrl)
		gomock.InOrder(
			source.EXPECT().SearchProfiles(gomock.Any(), "userId=u6").
				Return([]models.Profile{{Email: "old@example.com"}}, nil),
			source.EXPECT().SearchProfiles(gomock.Any(), "userId=u6").
				Return([]models.Profile{{Email: "new@example.com"}}, nil),
		)

		r := NewResolver(source, 30*time.Millisecond, nil)
		first := r.Resolve(ctx, "u6", "")
		cached := r.Resolve(ctx, "u6", "")
		time.Sleep(60 * time.Millisecond)
		refreshed := r.Resolve(ctx, "u6", "")

		require.NotNil(t, first)
		require.NotNil(t, cached)
		require.NotNil(t, refreshed)
		assert.Equal(t, "old@example.com", *cached)
		assert.Equal(t, "new@example.com", *refreshed)
	})
}
