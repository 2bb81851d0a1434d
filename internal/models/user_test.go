package models_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser("  Jane@Example.COM ")

	assert.Equal(suite.T(), "jane@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser("jane@example.com")

	err := models.DB.Create(&models.User{
		Email:        "JANE@example.com",
		PasswordHash: []byte("something"),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrEmailNotUnique)
}

func (suite *TestSuiteStandard) TestUserPasswordHashNotSerialized() {
	user := suite.createTestUser("jane@example.com")

	assert.NotContains(suite.T(), marshal(suite.T(), user), "irrelevant")
}
