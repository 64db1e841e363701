package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/config"
	httpx "github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/http"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/http/handlers"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/http/middleware"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/auth"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	policySvc := services.NewPolicyService(cas.E)

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.UserRepo)
	polH := handlers.NewPolicyHandlers(policySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(policySvc)

	r := httpx.BuildRouter(authH, polH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_manager", "/admin/*", "(GET|POST|PUT|DELETE)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
