package apimodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewListResponse(t *testing.T) {
	t.Run(`пустой список`, func(t *testing.T) {
		body, err := json.Marshal(NewListResponse[string](nil))
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"success","data":[],"rowCount":0}`, string(body))
	})
	t.Run(`число записей`, func(t *testing.T) {
		resp := NewListResponse([]int{1, 2, 3})
		require.Equal(t, 3, resp.RowCount)
		require.Equal(t, StatusSuccess, resp.Status)
	})
	t.Run(`ошибка`, func(t *testing.T) {
		body, err := json.Marshal(NewError("сбой"))
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"fail","message":"сбой"}`, string(body))
	})
}
