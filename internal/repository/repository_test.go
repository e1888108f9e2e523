package repository

import (
	"errors"
	"testing"

	"interviewai_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNotFoundTranslation(t *testing.T) {
	err := notFound(gorm.ErrRecordNotFound, util.ErrTestNotFound)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
	assert.True(t, util.IsNotFound(err))

	other := errors.New("connection refused")
	assert.Equal(t, other, notFound(other, util.ErrTestNotFound))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, "golang", escapeLike("golang"))
}
