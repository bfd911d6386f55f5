package checkout

import (
	"bytes"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (s *Server) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (s *Server) Script(c *fiber.Ctx) error {
	script, ok := s.scripts.Script()
	if !ok {
		return newRequestError(constants.ErrCodeScriptUnavailable)
	}

	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-store")

	return c.Send(script)
}

func (s *Server) Page(c *fiber.Ctx) error {
	sess, ok := s.lookup(c.Params("session"))
	if !ok {
		return newRequestError(constants.ErrCodeSessionNotFound)
	}

	var buf bytes.Buffer
	err := checkoutPage.Execute(&buf, pageData{
		Title:        s.config.MerchantName,
		ScriptPath:   scriptPath,
		CallbackBase: sessionPath(sess.id),
		TokenHeader:  TokenHeader,
		Options:      sess.options,
	})
	if err != nil {
		s.logger.Error("Failed to render checkout page", zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")

	return c.Send(buf.Bytes())
}

func (s *Server) Success(c *fiber.Ctx) error {
	sess, err := s.callbackSession(c)
	if err != nil {
		return err
	}

	var response model.GatewayResponse
	if err := c.BodyParser(&response); err != nil {
		s.logger.Warn("Failed to parse gateway response",
			zap.Error(err),
			zap.String("sessionID", sess.id))
		return s.finish(c, sess, result{err: &gateway.PaymentFailedError{
			Code:        "INVALID_RESPONSE",
			Description: "payment gateway returned an unreadable response",
		}}, fiber.StatusBadRequest)
	}

	if errs := s.validator.Validate(response); len(errs) > 0 {
		return s.finish(c, sess, result{err: &gateway.PaymentFailedError{
			Code:        "INVALID_RESPONSE",
			Description: "payment gateway returned an incomplete response",
		}}, fiber.StatusBadRequest)
	}

	if response.OrderID != sess.options.OrderID {
		s.logger.Warn("Gateway response order mismatch",
			zap.String("expectedOrderID", sess.options.OrderID),
			zap.String("orderID", response.OrderID))
		return s.finish(c, sess, result{err: &gateway.PaymentFailedError{
			Code:        "ORDER_MISMATCH",
			Description: "payment gateway returned a response for a different order",
		}}, fiber.StatusBadRequest)
	}

	return s.finish(c, sess, result{response: response}, fiber.StatusOK)
}

func (s *Server) Dismiss(c *fiber.Ctx) error {
	sess, err := s.callbackSession(c)
	if err != nil {
		return err
	}

	return s.finish(c, sess, result{err: gateway.ErrPaymentCancelled}, fiber.StatusOK)
}

func (s *Server) Failed(c *fiber.Ctx) error {
	sess, err := s.callbackSession(c)
	if err != nil {
		return err
	}

	var failure gateway.PaymentFailedError
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&failure); err != nil {
			s.logger.Warn("Failed to parse gateway failure", zap.Error(err))
		}
	}

	return s.finish(c, sess, result{err: &failure}, fiber.StatusOK)
}

// callbackSession resolves the session a callback reports on and checks its token.
func (s *Server) callbackSession(c *fiber.Ctx) (*session, error) {
	sess, ok := s.lookup(c.Params("session"))
	if !ok {
		return nil, newRequestError(constants.ErrCodeSessionNotFound)
	}

	if !sess.authorized(c.Get(TokenHeader)) {
		s.logger.Warn("Rejected checkout callback with a bad token",
			zap.String("sessionID", sess.id),
			zap.String("path", c.Path()))
		return nil, newRequestError(constants.ErrCodeSessionForbidden)
	}

	return sess, nil
}

func (s *Server) finish(c *fiber.Ctx, sess *session, r result, status int) error {
	if !sess.settle(r) {
		return newRequestError(constants.ErrCodeSessionSettled)
	}

	return c.Status(status).JSON(fiber.Map{"status": "received"})
}
