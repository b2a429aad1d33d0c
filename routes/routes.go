package routes

import (
    "github.com/jdu211109/UniLunch/controllers"
    "github.com/jdu211109/UniLunch/middlewares"
    "github.com/jdu211109/UniLunch/services"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub) *gin.Engine {
    r := gin.Default()

    corsCfg := cors.DefaultConfig()
    corsCfg.AllowAllOrigins = true
    corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
    r.Use(cors.New(corsCfg))

    // Public routes
    r.POST("/register", controllers.Register)
    r.POST("/login", controllers.Login)

    password := r.Group("/password")
    {
        password.POST("/send-code", controllers.SendResetCode)
        password.POST("/verify-code", controllers.VerifyResetCode)
        password.POST("/reset", controllers.ResetPassword)
    }

    r.GET("/meals", controllers.ListMeals)
    r.GET("/meals/categories", controllers.MealCategories)
    r.GET("/meals/:id", controllers.GetMeal)

    // Protected routes (require API token)
    authed := r.Group("/")
    authed.Use(middlewares.AuthMiddleware())
    {
        authed.GET("/user", controllers.CurrentUser)
        authed.POST("/logout", controllers.Logout)
        authed.POST("/logout-all", controllers.LogoutAll)

        authed.GET("/orders", controllers.ListOrders)
        authed.POST("/orders", controllers.CreateOrder)
        authed.PUT("/orders/:id/cancel", controllers.CancelOrder)
        authed.DELETE("/orders/:id", controllers.DeleteOrder)
    }

    // Admin only routes
    admin := r.Group("/")
    admin.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
    {
        admin.POST("/meals", controllers.CreateMeal)
        admin.PUT("/meals/:id", controllers.UpdateMeal)
        admin.DELETE("/meals/:id", controllers.DeleteMeal)
        admin.POST("/meals/image", controllers.UploadMealImage)

        admin.GET("/admin/orders", controllers.AdminListOrders)
        admin.PUT("/admin/orders/:id/status", controllers.UpdateOrderStatus)

        admin.GET("/admin/users", controllers.ListUsers)
        admin.PUT("/admin/users/:id/role", controllers.UpdateUserRole)

        rt := controllers.NewRealtimeController(hub)
        admin.GET("/admin/orders/ws", rt.OrdersWS)
    }

    return r
}
