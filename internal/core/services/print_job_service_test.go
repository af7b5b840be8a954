package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/google/uuid"
)

// Print job lifecycle tests share the submission fixture.

func (suite *SubmissionServiceTestSuite) submitOne(pages int, copies int) domain.PrintJob {
	doc := seedDocument(suite.store, suite.session.UserID, pages)
	jobs, err := suite.submission.Submit(context.Background(), suite.session, []domain.PrintRequest{bwRequest(doc.DocumentID, copies)})
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	return jobs[0]
}

func (suite *SubmissionServiceTestSuite) TestCancelJob_RefundsCharge() {
	ctx := context.Background()
	suite.allocate(20)
	job := suite.submitOne(4, 2)
	suite.Equal(int64(12), suite.balance())

	cancelled, err := suite.jobs.CancelJob(ctx, suite.session, job.JobID)

	suite.Require().NoError(err)
	suite.Equal(domain.JobCancelled, cancelled.Status)
	suite.Equal(int64(8), cancelled.EquivalentPagesCharged)
	suite.Equal(int64(20), suite.balance())

	history, err := suite.ledger.History(ctx, suite.session.UserID, dto.ListTransactionsParams{Page: 1, Size: 10})
	suite.Require().NoError(err)
	refund := history.Transactions[0]
	suite.Equal(string(domain.Refund), refund.Type)
	suite.Equal(int64(8), refund.Delta)
	suite.Require().NotNil(refund.ReferenceJobID)
	suite.Equal(job.JobID, *refund.ReferenceJobID)

	stored, err := suite.jobs.GetJob(ctx, suite.session, job.JobID)
	suite.Require().NoError(err)
	suite.Equal(domain.JobCancelled, stored.Status)
}

func (suite *SubmissionServiceTestSuite) TestCancelJob_TwiceIsConflict() {
	ctx := context.Background()
	suite.allocate(20)
	job := suite.submitOne(2, 1)

	_, err := suite.jobs.CancelJob(ctx, suite.session, job.JobID)
	suite.Require().NoError(err)
	_, err = suite.jobs.CancelJob(ctx, suite.session, job.JobID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(int64(20), suite.balance())
}

func (suite *SubmissionServiceTestSuite) TestCancelJob_OtherUserSeesNotFound() {
	suite.allocate(20)
	job := suite.submitOne(2, 1)
	stranger := domain.Session{UserID: uuid.NewString(), Role: domain.RoleStudent}

	_, err := suite.jobs.CancelJob(context.Background(), stranger, job.JobID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(int64(18), suite.balance())
}

func (suite *SubmissionServiceTestSuite) TestUpdateStatus_RequiresAdminOrService() {
	suite.allocate(20)
	job := suite.submitOne(2, 1)

	_, err := suite.jobs.UpdateStatus(context.Background(), suite.session, job.JobID, domain.JobPrinting, "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SubmissionServiceTestSuite) TestUpdateStatus_FailedJobIsNotRefunded() {
	ctx := context.Background()
	suite.allocate(20)
	job := suite.submitOne(5, 1)
	dispatcher := domain.Session{UserID: "dispatcher", Role: domain.RoleService}

	printing, err := suite.jobs.UpdateStatus(ctx, dispatcher, job.JobID, domain.JobPrinting, "")
	suite.Require().NoError(err)
	suite.Equal(domain.JobPrinting, printing.Status)
	suite.Nil(printing.CompletedAt)

	_, err = suite.jobs.CancelJob(ctx, suite.session, job.JobID)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.jobs.UpdateStatus(ctx, dispatcher, job.JobID, domain.JobFailed, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.clock.Advance(time.Minute)
	failed, err := suite.jobs.UpdateStatus(ctx, dispatcher, job.JobID, domain.JobFailed, "paper jam")
	suite.Require().NoError(err)
	suite.Equal(domain.JobFailed, failed.Status)
	suite.Require().NotNil(failed.CompletedAt)
	suite.Equal(suite.clock.now, *failed.CompletedAt)
	suite.Require().NotNil(failed.ErrorMessage)
	suite.Equal("paper jam", *failed.ErrorMessage)
	suite.Equal(int64(15), suite.balance())

	_, err = suite.jobs.UpdateStatus(ctx, dispatcher, job.JobID, domain.JobCompleted, "")
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *SubmissionServiceTestSuite) TestUpdateStatus_PendingCannotComplete() {
	suite.allocate(20)
	job := suite.submitOne(2, 1)
	admin := domain.Session{UserID: "admin", Role: domain.RoleAdmin}

	_, err := suite.jobs.UpdateStatus(context.Background(), admin, job.JobID, domain.JobCompleted, "")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *SubmissionServiceTestSuite) TestListJobs_NewestFirstWithToken() {
	ctx := context.Background()
	suite.allocate(50)
	var submitted []domain.PrintJob
	for i := 0; i < 3; i++ {
		submitted = append(submitted, suite.submitOne(1, 1))
		suite.clock.Advance(time.Second)
	}

	first, err := suite.jobs.ListJobs(ctx, suite.session, dto.ListPrintJobsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(first.Jobs, 2)
	suite.Equal(submitted[2].JobID, first.Jobs[0].JobID)
	suite.Equal(submitted[1].JobID, first.Jobs[1].JobID)
	suite.Require().NotNil(first.NextToken)

	second, err := suite.jobs.ListJobs(ctx, suite.session, dto.ListPrintJobsParams{Limit: 2, NextToken: first.NextToken})
	suite.Require().NoError(err)
	suite.Require().Len(second.Jobs, 1)
	suite.Equal(submitted[0].JobID, second.Jobs[0].JobID)
	suite.Nil(second.NextToken)

	bad := "not-a-token"
	_, err = suite.jobs.ListJobs(ctx, suite.session, dto.ListPrintJobsParams{Limit: 2, NextToken: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}
