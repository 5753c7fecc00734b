package migration

import (
	aidomain "github.com/rsmedika/inventaris/internal/ai/domain"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"github.com/rsmedika/inventaris/internal/config"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
	requestdomain "github.com/rsmedika/inventaris/internal/request/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql deployments are dev/small-site setups; the gorm
		// schema is authoritative there.
		return conn.AutoMigrate(
			&itemdomain.Item{},
			&requestdomain.AssetRequest{},
			&aidomain.AIRecommendation{},
			&aidomain.ForecastRun{},
			&auditdomain.AuditLog{},
		)
	}),
)
