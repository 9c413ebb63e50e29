package router

import (
	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/handler"
	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, mover chain.AssetMover, notifier *notify.Notifier, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "publicfund-vault",
		})
	})

	// 业务逻辑
	tokenLogic := logic.NewTokenLogic(db, cfg.Vault.Owner, notifier)
	donationLogic := logic.NewDonationLogic(db, mover, notifier)
	proposalLogic := logic.NewProposalLogic(db, cfg.Vault, notifier)
	voteLogic := logic.NewVoteLogic(db, notifier)
	executionLogic := logic.NewExecutionLogic(db, cfg.Vault, mover, notifier)
	custodyLogic := logic.NewCustodyLogic(db, cfg.Vault.Owner, mover, notifier)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 金库相关路由
		vaultHandler := handler.NewVaultHandler(cfg.Vault, custodyLogic, donationLogic, proposalLogic, tokenLogic, notifier)
		vault := v1.Group("/vault")
		{
			vault.GET("", vaultHandler.GetVault)
			vault.GET("/stats", vaultHandler.GetStats)
			vault.GET("/balances/eth", vaultHandler.GetEthBalance)
			vault.GET("/balances/token/:address", vaultHandler.GetTokenBalance)
			vault.POST("/emergency-withdraw", vaultHandler.EmergencyWithdraw)
			vault.GET("/payouts", vaultHandler.GetPayouts)
			vault.GET("/events", vaultHandler.GetEvents)
		}

		// 捐赠相关路由
		donationHandler := handler.NewDonationHandler(donationLogic)
		donations := v1.Group("/donations")
		{
			donations.POST("/eth", donationHandler.DonateEth)
			donations.POST("/token", donationHandler.DonateToken)
		}
		v1.GET("/donors/:address", donationHandler.GetDonor)
		v1.GET("/donors/:address/voting-power", donationHandler.GetVotingPower)

		// 代币注册表路由
		tokenHandler := handler.NewTokenHandler(tokenLogic)
		tokens := v1.Group("/tokens")
		{
			tokens.GET("", tokenHandler.GetTokens)
			tokens.POST("", tokenHandler.AddToken)
		}

		// 提案相关路由
		proposalHandler := handler.NewProposalHandler(proposalLogic, voteLogic, executionLogic)
		proposals := v1.Group("/proposals")
		{
			proposals.POST("", proposalHandler.CreateProposal)
			proposals.GET("", proposalHandler.GetProposals)
			proposals.GET("/:id", proposalHandler.GetProposal)
			proposals.POST("/:id/votes", proposalHandler.Vote)
			proposals.POST("/:id/execute", proposalHandler.Execute)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
