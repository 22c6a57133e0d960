package domain

import (
	"github.com/getcarekorea/content-engine/internal/domain/content"
	"github.com/getcarekorea/content-engine/internal/domain/directory"
)

type ContentItem = content.ContentItem
type PerformanceRecord = content.PerformanceRecord
type LearningDataRecord = content.LearningDataRecord
type FeedbackEvent = content.FeedbackEvent

type Hospital = directory.Hospital
type Procedure = directory.Procedure

const (
	StatusDraft     = content.StatusDraft
	StatusPublished = content.StatusPublished

	TierTop = content.TierTop
	TierMid = content.TierMid
	TierLow = content.TierLow

	FeedbackPositive = content.FeedbackPositive
	FeedbackNegative = content.FeedbackNegative
	FeedbackEdit     = content.FeedbackEdit

	LearningSourceManual    = content.LearningSourceManual
	LearningSourceAggregate = content.LearningSourceAggregate
)
