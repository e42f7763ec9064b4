package server

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/ElectricTools/internal/handlers"
	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/metrics"
	"github.com/arzan03/ElectricTools/internal/middleware"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Tokens   *services.TokenService
	Users    *services.UserService
	Tools    *services.ToolService
	Orders   *services.OrderService
	Payments *services.PaymentService
	Reviews  *services.ReviewService
	Stats    *services.StatsService

	// ReviewAnonymousCreate lets POST /review through without a token.
	ReviewAnonymousCreate bool
	// RequestTimeout bounds the context handed to the stores; zero disables it.
	RequestTimeout time.Duration
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// New builds the fiber app with every route registered.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ElectricTools",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New())
	app.Use(metrics.Middleware())
	if d.RequestTimeout > 0 {
		app.Use(timeout(d.RequestTimeout))
	}

	authenticated := middleware.Authenticated(d.Tokens)
	admin := middleware.Chain(authenticated, middleware.Admin(d.Users))
	auth := middleware.Chain(authenticated)

	tools := handlers.NewToolHandler(d.Tools)
	orders := handlers.NewOrderHandler(d.Orders)
	payments := handlers.NewPaymentHandler(d.Payments)
	reviews := handlers.NewReviewHandler(d.Reviews)
	users := handlers.NewUserHandler(d.Users, d.Stats)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello Electric Tools Manufacturer!")
	})
	app.Get("/metrics", metrics.Handler())

	// Tool catalog: public read, admin write
	app.Get("/tools", tools.ListTools)
	app.Get("/all-tools", tools.SearchTools)
	app.Get("/tools-count", tools.CountTools)
	app.Get("/tool/:id", tools.GetTool)
	app.Post("/tool", admin, tools.CreateTool)
	app.Put("/tool/:id", admin, tools.UpdateTool)
	app.Delete("/tool/:id", admin, tools.DeleteTool)
	app.Post("/tool/:id/image", admin, tools.UploadToolImage)

	// Orders and payments
	app.Post("/order", orders.CreateOrder)
	app.Get("/orders", middleware.Chain(authenticated, middleware.SelfByQuery("email")), orders.ListOrders)
	app.Get("/order/:id", auth, orders.GetOrder)
	app.Patch("/order/:id", auth, orders.ConfirmPayment)
	app.Delete("/order/:id", auth, orders.DeleteOrder)
	app.Post("/create-payment-intent", auth, payments.CreatePaymentIntent)
	app.Get("/payments", middleware.Chain(authenticated, middleware.SelfByQuery("email")), payments.ListPayments)

	// Reviews
	if d.ReviewAnonymousCreate {
		app.Post("/review", middleware.Chain(middleware.Optional(d.Tokens)), reviews.CreateReview)
	} else {
		app.Post("/review", auth, reviews.CreateReview)
	}
	app.Get("/reviews", reviews.ListReviews)
	app.Delete("/review/:id", admin, reviews.DeleteReview)

	// Users; the fixed /user/admin and /user/email prefixes go before /user/:id
	app.Post("/user", users.SaveUser)
	app.Get("/jwt", users.IssueToken)
	app.Get("/me", auth, users.Me)
	app.Get("/user", middleware.Chain(authenticated, middleware.SelfByQuery("email")), users.GetProfile)
	app.Get("/user/admin/:email", users.CheckAdmin)
	app.Put("/user/admin/:id", admin, users.PromoteUser)
	app.Put("/user/email/:email", users.SignIn)
	app.Put("/user/:id", middleware.Chain(authenticated, middleware.SelfByUserID(d.Users, "id")), users.UpdateProfile)
	app.Get("/users", admin, users.ListUsers)
	app.Delete("/user/:id", admin, users.DeleteUser)
	app.Get("/admin-stats", admin, users.AdminStats)

	return app
}

func timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandler keeps fiber's own errors (404 route, 405, body limits) in
// the {message} shape used by the handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message = fe.Code, fe.Message
	} else {
		logger.FromCtx(c).Error("unhandled error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
