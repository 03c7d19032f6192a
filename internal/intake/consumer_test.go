package intake

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestDeathCountAbsent(t *testing.T) {
	d := amqp.Delivery{}
	assert.Equal(t, int64(0), deathCount(d))
}

func TestDeathCountPresent(t *testing.T) {
	d := amqp.Delivery{
		Headers: amqp.Table{
			"x-death": []interface{}{
				amqp.Table{"count": int64(3)},
			},
		},
	}
	assert.Equal(t, int64(3), deathCount(d))
}
