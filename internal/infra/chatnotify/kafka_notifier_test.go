package chatnotify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/service"
)

func TestKafkaNotifier_SendsMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewKafkaProducerConfig(0))
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var got service.ChatNotification
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got != testMessage() {
			return errors.New("unexpected payload")
		}

		return nil
	})

	notifier := NewKafkaNotifierWithProducer(producer, "veluna-chat", discardLogger())

	assert.Nil(t, notifier.NotifyChat(context.Background(), testMessage()))
	require.NoError(t, notifier.Close())
}

func TestKafkaNotifier_FailureIsNotifyError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewKafkaProducerConfig(0))
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	notifier := NewKafkaNotifierWithProducer(producer, "veluna-chat", discardLogger())

	nerr := notifier.NotifyChat(context.Background(), testMessage())
	require.NotNil(t, nerr)
	assert.Equal(t, "kafka", nerr.Provider)
	assert.ErrorIs(t, nerr, sarama.ErrOutOfBrokers)
	require.NoError(t, notifier.Close())
}
