package telegram

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
	"github.com/reshetovitsme/devradar/internal/shared/errors"
	"github.com/reshetovitsme/devradar/internal/transport/telegram/mocks"
)

func TestClient_ForwardMessage(t *testing.T) {
	api := &mocks.APIMock{
		ForwardMessageFunc: func(_ context.Context, params *bot.ForwardMessageParams) (*models.Message, error) {
			if params.ChatID == int64(13) {
				return nil, fmt.Errorf("forbidden: bot was blocked by the user")
			}
			return &models.Message{ID: 1}, nil
		},
	}
	client := NewClient(api)

	require.NoError(t, client.ForwardMessage(context.Background(), 7, -1001, 42))
	call := api.ForwardMessageCalls()[0].Params
	assert.Equal(t, int64(7), call.ChatID)
	assert.Equal(t, int64(-1001), call.FromChatID)
	assert.Equal(t, 42, call.MessageID)

	err := client.ForwardMessage(context.Background(), 13, -1001, 42)
	assert.ErrorIs(t, err, errors.ErrTransport)
	assert.ErrorContains(t, err, "blocked")
}

func TestClient_SendMessage(t *testing.T) {
	api := &mocks.APIMock{
		SendMessageFunc: func(context.Context, *bot.SendMessageParams) (*models.Message, error) {
			return &models.Message{}, nil
		},
	}
	client := NewClient(api)

	require.NoError(t, client.SendMessage(context.Background(), 7, "<b>hi</b>", true))
	require.NoError(t, client.SendMessage(context.Background(), 7, "plain", false))

	calls := api.SendMessageCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, models.ParseModeHTML, calls[0].Params.ParseMode)
	require.NotNil(t, calls[0].Params.LinkPreviewOptions)
	assert.True(t, *calls[0].Params.LinkPreviewOptions.IsDisabled)
	assert.Nil(t, calls[1].Params.LinkPreviewOptions)
}

func TestClient_GetChatInfo(t *testing.T) {
	api := &mocks.APIMock{
		GetChatFunc: func(_ context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error) {
			switch params.ChatID {
			case "@devjobs":
				return &models.ChatFullInfo{ID: -1001, Type: "channel", Title: "Dev Jobs", Username: "devjobs"}, nil
			case "@weird":
				return &models.ChatFullInfo{ID: -1002, Type: "unknown"}, nil
			default:
				return nil, fmt.Errorf("Bad Request: chat not found")
			}
		},
	}
	client := NewClient(api)

	info, err := client.GetChatInfo(context.Background(), "@devjobs")
	require.NoError(t, err)
	assert.Equal(t, &channelDomain.ChatInfo{ID: -1001, Type: channelDomain.ChatTypeChannel, Title: "Dev Jobs", Username: "devjobs"}, info)
	assert.True(t, info.IsChannel())

	_, err = client.GetChatInfo(context.Background(), int64(-1003))
	assert.ErrorIs(t, err, errors.ErrTransport)

	_, err = client.GetChatInfo(context.Background(), "@weird")
	assert.ErrorIs(t, err, errors.ErrTransport)
}
