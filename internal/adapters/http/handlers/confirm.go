package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// confirmParam is the query parameter that answers a confirmation prompt.
const confirmParam = "confirm"

// queryConfirmer answers prompts from ?confirm=true|false. Without the
// parameter it returns nil, so a prompt fails with a confirmation-required
// conflict and the client can retry with an answer.
func queryConfirmer(c *gin.Context) (ports.Confirmer, error) {
	raw, ok := c.GetQuery(confirmParam)
	if !ok {
		return nil, nil
	}

	answer, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationErrorWithValue(confirmParam, "must be true or false", raw)
	}

	return ports.AlwaysConfirm(answer), nil
}
