package notify

import (
	"fmt"

	"github.com/quickhiresl/backend/internal/models"
)

// Notification builders. Titles and messages mirror what the mobile
// clients already render.

func ApplicationReceivedNotification(ownerID int64, applicantName, jobTitle string, jobID int64) models.Notification {
	if applicantName == "" {
		applicantName = "Unknown Applicant"
	}
	return models.Notification{
		RecipientID:  ownerID,
		Type:         models.NotificationApplicationReceived,
		Title:        "New Job Application",
		Message:      fmt.Sprintf("%s has applied for your job: %s", applicantName, jobTitle),
		RelatedJobID: jobID,
	}
}

// StatusChangedNotification describes an application status transition to
// the given recipient.
func StatusChangedNotification(recipientID int64, jobTitle string, jobID int64, newStatus models.ApplicationStatus) models.Notification {
	var title, message string
	switch newStatus {
	case models.StatusAccepted:
		title = "Application Accepted"
		message = fmt.Sprintf("Your application for %s has been accepted!", jobTitle)
	case models.StatusRejected:
		title = "Application Rejected"
		message = fmt.Sprintf("Your application for %s has been rejected.", jobTitle)
	case models.StatusCompletionRequested:
		title = "Job Completion Requested"
		message = fmt.Sprintf("Job completion has been requested for %s.", jobTitle)
	case models.StatusCompleted:
		title = "Job Completed"
		message = fmt.Sprintf("Your job %s has been marked as completed.", jobTitle)
	default:
		title = "Application Status Updated"
		message = fmt.Sprintf("Your application status for %s has been updated to %s.", jobTitle, newStatus)
	}

	return models.Notification{
		RecipientID:  recipientID,
		Type:         models.NotificationStatusChanged,
		Title:        title,
		Message:      message,
		RelatedJobID: jobID,
	}
}

// CompletionCancelledNotification tells the counterparty that an
// outstanding completion request was withdrawn.
func CompletionCancelledNotification(recipientID int64, jobTitle string, jobID int64) models.Notification {
	return models.Notification{
		RecipientID:  recipientID,
		Type:         models.NotificationStatusChanged,
		Title:        "Completion Request Cancelled",
		Message:      fmt.Sprintf("The completion request for %s has been cancelled.", jobTitle),
		RelatedJobID: jobID,
	}
}

func JobPostedNotification(recipientID, jobID int64, jobTitle, company string) models.Notification {
	return models.Notification{
		RecipientID:  recipientID,
		Type:         models.NotificationJobPosted,
		Title:        "New Job Opportunity",
		Message:      fmt.Sprintf("New job posted: %s at %s", jobTitle, company),
		RelatedJobID: jobID,
	}
}
