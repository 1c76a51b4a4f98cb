package domain

import (
	"github.com/opsdeck/qcdesk-backend/internal/domain/account"
	"github.com/opsdeck/qcdesk-backend/internal/domain/auth"
	"github.com/opsdeck/qcdesk-backend/internal/domain/evaluation"
	"github.com/opsdeck/qcdesk-backend/internal/domain/production"
)

const (
	RoleAdmin   = account.RoleAdmin
	RoleManager = account.RoleManager
	RoleQC      = account.RoleQC
	RoleAgent   = account.RoleAgent
)

const (
	ClassificationRegular  = evaluation.ClassificationRegular
	ClassificationRework   = evaluation.ClassificationRework
	ClassificationNoTarget = evaluation.ClassificationNoTarget
)

const (
	TimeSlotNoon    = evaluation.TimeSlotNoon
	TimeSlotFour    = evaluation.TimeSlotFour
	TimeSlotEvening = evaluation.TimeSlotEvening
)

type Account = account.Account
type AccountToken = auth.AccountToken

type Classification = evaluation.Classification
type EvaluationRecord = evaluation.Record
type SampleResult = evaluation.SampleResult

type ProductionLog = production.Log
type ProjectTarget = production.Target

// TimeSlots is the fixed evaluation slot order used by listings and series.
var TimeSlots = evaluation.TimeSlots

func ValidRole(role string) bool { return account.ValidRole(role) }
func Elevated(role string) bool { return account.Elevated(role) }
func ValidTimeSlot(slot string) bool { return evaluation.ValidTimeSlot(slot) }
