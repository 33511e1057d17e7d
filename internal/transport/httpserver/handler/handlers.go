package handler

import (
	"time"

	"roomies-go/internal/auth"
	expensedomain "roomies-go/internal/domain/expense"
	householddomain "roomies-go/internal/domain/household"
	invitationdomain "roomies-go/internal/domain/invitation"
	taskdomain "roomies-go/internal/domain/task"
	userdomain "roomies-go/internal/domain/user"
	"roomies-go/pkg/logger"
)

type Handlers struct {
	Users       *userdomain.Service
	Households  *householddomain.Service
	Invitations *invitationdomain.Service
	Expenses    *expensedomain.Service
	Tasks       *taskdomain.Service

	tokens        *auth.TokenManager
	secureCookies bool
	sessionTTL    time.Duration
	log           logger.Logger
}

func New(
	users *userdomain.Service,
	households *householddomain.Service,
	invitations *invitationdomain.Service,
	expenses *expensedomain.Service,
	tasks *taskdomain.Service,
	tokens *auth.TokenManager,
	secureCookies bool,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:         users,
		Households:    households,
		Invitations:   invitations,
		Expenses:      expenses,
		Tasks:         tasks,
		tokens:        tokens,
		secureCookies: secureCookies,
		sessionTTL:    tokens.RefreshTTL(),
		log:           log,
	}
}
