package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/code-100-precent/EchoPBX/internal/api"
	"github.com/code-100-precent/EchoPBX/internal/download"
	"github.com/code-100-precent/EchoPBX/internal/session"
	"github.com/code-100-precent/EchoPBX/internal/store"
	"github.com/code-100-precent/EchoPBX/pkg/cache"
	"github.com/code-100-precent/EchoPBX/pkg/config"
	"github.com/code-100-precent/EchoPBX/pkg/logger"
	"github.com/code-100-precent/EchoPBX/pkg/notify"
	"go.uber.org/zap"

	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// App 命令层共享的运行时：配置、会话、缓存、客户端、通知
type App struct {
	Config     *config.Config
	Session    *session.Session
	Store      *store.Store
	Client     *api.Client
	Queries    *cache.QueryCache
	Notify     *notify.Notifier
	Downloader *download.Downloader
}

// NewApp 按全局配置装配运行时
func NewApp() (*App, error) {
	cfg := config.GlobalConfig
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	baseURL := cfg.APIBaseURL

	// 有激活 profile 就用它的地址和 token 恢复会话
	if profile, err := st.Active(); err == nil {
		if profile.BaseURL != "" {
			baseURL = profile.BaseURL
		}
		sess.SetToken(profile.Token)
		sess.SetProfile(profile.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("read active profile failed", zap.Error(err))
	}

	if err := cache.InitGlobalCache(cfg.Cache); err != nil {
		return nil, err
	}

	var retryIf func(error) bool
	if cfg.APIRetryReads {
		retryIf = api.IsTransport
	}
	queries := cache.NewQueryCache(cache.GetGlobalCache(), cfg.QueryTTL, retryIf)

	client := api.New(api.Config{BaseURL: baseURL, Timeout: cfg.APITimeout}, sess)

	app := &App{
		Config:     cfg,
		Session:    sess,
		Store:      st,
		Client:     client,
		Queries:    queries,
		Notify:     notify.NewNotifier(&notify.ConsoleSink{Out: os.Stdout}),
		Downloader: download.New(client.Recordings(), cfg.DownloadDir),
	}

	// 有 token 就拉一次当前用户，决定增删改入口
	if sess.SignedIn() {
		if user, err := client.Me(context.Background()); err == nil {
			sess.SetUser(user)
		} else {
			logger.Warn("restore session failed", zap.Error(err))
		}
	}
	return app, nil
}

// Deps 页面公共依赖
func (a *App) Deps() screens.Deps {
	return screens.Deps{
		Cache:    a.Queries,
		Session:  a.Session,
		Notify:   a.Notify,
		Debounce: a.Config.SearchDebounce,
		PageSize: a.Config.DefaultPageSize,
	}
}

// Close 释放资源
func (a *App) Close() {
	if a.Store != nil {
		_ = a.Store.Close()
	}
	cache.CloseGlobalCache()
}

// confirm 终端 y/N 确认
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	var answer string
	fmt.Fscanln(cmd.InOrStdin(), &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// NewRootCommand 组装命令树
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pbxadmin",
		Short:         "PBX administration console",
		Long:          "Command line console for managing conference rooms, DIDs, IVR menus, recordings, users, outbound whitelist and sentry blacklists of a PBX.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewLoginCommand(),
		NewLogoutCommand(),
		NewProfilesCommand(),
		NewRoomsCommand(),
		NewDIDsCommand(),
		NewIVRCommand(),
		NewRecordingsCommand(),
		NewUsersCommand(),
		NewWhitelistCommand(),
		NewSentryCommand(),
		NewLiveCallsCommand(),
		NewDashboardCommand(),
		NewStatsCommand(),
	)
	return root
}

// Execute 入口
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
