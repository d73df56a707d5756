package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/courseauth/internal/api/grpc/api"
	"github.com/dtroode/courseauth/internal/mocks"
	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/testutil"
)

type handlerDeps struct {
	verification *mocks.VerificationService
	session      *mocks.SessionService
	ctxMgr       *mocks.ContextManager
}

func newTestHandler(t *testing.T) (*Verification, handlerDeps) {
	d := handlerDeps{
		verification: mocks.NewVerificationService(t),
		session:      mocks.NewSessionService(t),
		ctxMgr:       mocks.NewContextManager(t),
	}
	return NewVerification(d.verification, d.session, d.ctxMgr, testutil.MakeNoopLogger()), d
}

func grpcCode(err error) codes.Code {
	st, _ := status.FromError(err)
	return st.Code()
}

func TestVerification_StartVerification(t *testing.T) {
	t.Parallel()

	eventID := uuid.New()

	tests := []struct {
		name        string
		email       string
		setup       func(d handlerDeps)
		wantCode    codes.Code
		wantMessage string
		wantSent    bool
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			setup:    func(d handlerDeps) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "empty email",
			email:    "",
			setup:    func(d handlerDeps) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name:  "delivered",
			email: "a@x.com",
			setup: func(d handlerDeps) {
				d.verification.On("StartVerificationEvent", mock.Anything, "a@x.com").
					Return(model.VerificationEvent{ID: eventID}, true, nil).Once()
				d.verification.On("SenderAddress").Return("no-reply@x.com")
			},
			wantCode:    codes.OK,
			wantMessage: "Success! Check your email for verification from no-reply@x.com",
			wantSent:    true,
		},
		{
			name:  "delivery failed",
			email: "a@x.com",
			setup: func(d handlerDeps) {
				d.verification.On("StartVerificationEvent", mock.Anything, "a@x.com").
					Return(model.VerificationEvent{ID: eventID}, false, nil).Once()
				d.verification.On("SenderAddress").Return("no-reply@x.com")
			},
			wantCode:    codes.OK,
			wantMessage: deliveryFailedMessage,
		},
		{
			name:  "storage failure",
			email: "a@x.com",
			setup: func(d handlerDeps) {
				d.verification.On("StartVerificationEvent", mock.Anything, "a@x.com").
					Return(model.VerificationEvent{}, false, errors.New("db down")).Once()
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, d := newTestHandler(t)
			tt.setup(d)

			resp, err := h.StartVerification(context.Background(), &api.StartVerificationRequest{Email: tt.email})
			if tt.wantCode != codes.OK {
				assert.Equal(t, tt.wantCode, grpcCode(err))
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, eventID.String(), resp.EventID)
			assert.Equal(t, tt.wantSent, resp.Delivered)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestVerification_VerifyToken(t *testing.T) {
	t.Parallel()

	identity := model.Identity{ID: uuid.New(), Email: "a@x.com"}

	t.Run("success binds session", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.verification.On("VerifyToken", mock.Anything, "tok", 0).Return(model.NewVerifySuccess(identity), nil).Once()
		d.session.On("Bind", mock.Anything, identity).Return("session-token", nil).Once()

		resp, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{Token: "tok"})
		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, "VERIFIED", resp.Reason)
		assert.Equal(t, "verification success", resp.Message)
		assert.Equal(t, identity.ID.String(), resp.EmailID)
		assert.Equal(t, "session-token", resp.SessionToken)
	})

	t.Run("rejection is not an error", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.verification.On("VerifyToken", mock.Anything, "tok", 3).Return(model.NewVerifyFailure(model.ReasonMaxAttempts), nil).Once()

		resp, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{Token: "tok", MaxAttempts: 3})
		require.NoError(t, err)
		assert.False(t, resp.OK)
		assert.Equal(t, "MAX_ATTEMPTS_REACHED", resp.Reason)
		assert.Equal(t, "max attempts exceeded", resp.Message)
		assert.Empty(t, resp.SessionToken)
	})

	t.Run("empty token is an invalid token", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.verification.On("VerifyToken", mock.Anything, "", 0).Return(model.NewVerifyFailure(model.ReasonInvalidToken), nil).Once()

		resp, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{})
		require.NoError(t, err)
		assert.False(t, resp.OK)
		assert.Equal(t, "INVALID_TOKEN", resp.Reason)
		assert.Equal(t, "token invalid", resp.Message)
		assert.Empty(t, resp.SessionToken)
	})

	t.Run("negative ceiling", func(t *testing.T) {
		t.Parallel()
		h, _ := newTestHandler(t)
		_, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{Token: "tok", MaxAttempts: -1})
		assert.Equal(t, codes.InvalidArgument, grpcCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.verification.On("VerifyToken", mock.Anything, "tok", 0).Return(model.VerifyResult{}, errors.New("db down")).Once()

		_, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{Token: "tok"})
		assert.Equal(t, codes.Internal, grpcCode(err))
	})

	t.Run("bind failure", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.verification.On("VerifyToken", mock.Anything, "tok", 0).Return(model.NewVerifySuccess(identity), nil).Once()
		d.session.On("Bind", mock.Anything, identity).Return("", errors.New("db down")).Once()

		_, err := h.VerifyToken(context.Background(), &api.VerifyTokenRequest{Token: "tok"})
		assert.Equal(t, codes.Internal, grpcCode(err))
	})
}

func TestVerification_EmailStatus(t *testing.T) {
	t.Parallel()

	h, d := newTestHandler(t)
	d.verification.On("EmailIsVerified", mock.Anything, "a@x.com").Return(true, nil).Once()
	d.verification.On("EmailIsVerified", mock.Anything, "b@x.com").Return(false, errors.New("db down")).Once()

	resp, err := h.EmailStatus(context.Background(), &api.EmailStatusRequest{Email: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	_, err = h.EmailStatus(context.Background(), &api.EmailStatusRequest{Email: "b@x.com"})
	assert.Equal(t, codes.Internal, grpcCode(err))

	_, err = h.EmailStatus(context.Background(), &api.EmailStatusRequest{Email: "bad"})
	assert.Equal(t, codes.InvalidArgument, grpcCode(err))
}

func TestVerification_WhoAmI(t *testing.T) {
	t.Parallel()

	identity := model.Identity{ID: uuid.New(), Email: "a@x.com"}

	t.Run("bound identity", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(identity.ID, true).Once()
		d.verification.On("Identity", mock.Anything, identity.ID).Return(identity, true, nil).Once()

		resp, err := h.WhoAmI(context.Background(), &api.WhoAmIRequest{})
		require.NoError(t, err)
		assert.Equal(t, identity.ID.String(), resp.EmailID)
		assert.Equal(t, "a@x.com", resp.Email)
		assert.Equal(t, "a@x.com", resp.DisplayName)
	})

	t.Run("no identity in context", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(uuid.Nil, false).Once()

		_, err := h.WhoAmI(context.Background(), &api.WhoAmIRequest{})
		assert.Equal(t, codes.Unauthenticated, grpcCode(err))
	})

	t.Run("identity gone", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(identity.ID, true).Once()
		d.verification.On("Identity", mock.Anything, identity.ID).Return(model.Identity{}, false, nil).Once()

		_, err := h.WhoAmI(context.Background(), &api.WhoAmIRequest{})
		assert.Equal(t, codes.Unauthenticated, grpcCode(err))
	})
}

func TestVerification_ListEvents(t *testing.T) {
	t.Parallel()

	identity := model.Identity{ID: uuid.New(), Email: "a@x.com"}
	expiredAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	events := []model.VerificationEvent{
		{ID: uuid.New(), Token: "newer", Attempts: 1, CreatedAt: expiredAt},
		{ID: uuid.New(), Token: "older", Attempts: 5, Expired: true, ExpiredAt: &expiredAt, CreatedAt: expiredAt.Add(-time.Hour)},
	}

	t.Run("lists caller history", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(identity.ID, true).Once()
		d.verification.On("Identity", mock.Anything, identity.ID).Return(identity, true, nil).Once()
		d.verification.On("ListEvents", mock.Anything, "a@x.com").Return(events, nil).Once()

		resp, err := h.ListEvents(context.Background(), &api.ListEventsRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Events, 2)
		assert.Equal(t, events[0].ID.String(), resp.Events[0].ID)
		assert.False(t, resp.Events[0].Expired)
		assert.True(t, resp.Events[1].Expired)
		assert.Equal(t, 5, resp.Events[1].Attempts)
		assert.Equal(t, &expiredAt, resp.Events[1].ExpiredAt)
	})

	t.Run("no history", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(identity.ID, true).Once()
		d.verification.On("Identity", mock.Anything, identity.ID).Return(identity, true, nil).Once()
		d.verification.On("ListEvents", mock.Anything, "a@x.com").Return(nil, nil).Once()

		resp, err := h.ListEvents(context.Background(), &api.ListEventsRequest{})
		require.NoError(t, err)
		assert.NotNil(t, resp.Events)
		assert.Empty(t, resp.Events)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(uuid.Nil, false).Once()

		_, err := h.ListEvents(context.Background(), &api.ListEventsRequest{})
		assert.Equal(t, codes.Unauthenticated, grpcCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.ctxMgr.On("GetEmailIDFromContext", mock.Anything).Return(identity.ID, true).Once()
		d.verification.On("Identity", mock.Anything, identity.ID).Return(identity, true, nil).Once()
		d.verification.On("ListEvents", mock.Anything, "a@x.com").Return(nil, errors.New("db down")).Once()

		_, err := h.ListEvents(context.Background(), &api.ListEventsRequest{})
		assert.Equal(t, codes.Internal, grpcCode(err))
	})
}

func TestVerification_Logout(t *testing.T) {
	t.Parallel()

	t.Run("clears presented session", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.session.On("Clear", mock.Anything, "session-token").Return(nil).Once()

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer session-token"))
		_, err := h.Logout(ctx, &api.LogoutRequest{})
		require.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		h, _ := newTestHandler(t)
		_, err := h.Logout(context.Background(), &api.LogoutRequest{})
		assert.Equal(t, codes.Unauthenticated, grpcCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		h, d := newTestHandler(t)
		d.session.On("Clear", mock.Anything, "session-token").Return(errors.New("db down")).Once()

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer session-token"))
		_, err := h.Logout(ctx, &api.LogoutRequest{})
		assert.Equal(t, codes.Internal, grpcCode(err))
	})
}
