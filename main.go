package main

import (
	"DataLint/src/config"
	"DataLint/src/datapush"
	"DataLint/src/datasource/email"
	"DataLint/src/datasource/file"
	"DataLint/src/engine"
	"DataLint/src/report"
	"DataLint/src/storage"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron"
)

func main() {
	configDir := flag.String("config", "./config", "配置文件目录")
	checkFile := flag.String("check", "", "单次校验指定数据文件后退出")
	flag.Parse()

	if *checkFile != "" {
		os.Exit(runOnce(*checkFile, *configDir))
	}

	runService(*configDir)
}

// runOnce 单次校验模式：读文件、跑全部检查、打印报告
// 校验不通过时退出码为1，供CI等脚本场景使用
func runOnce(dataFile, configDir string) int {
	cc := engine.DefaultCheckConfig()
	var (
		sheetName string
		dcfg      *config.DataConfig
	)

	// 配置文件缺失时直接用默认阈值
	cfg, dcfg, err := config.LoadConfig(configDir, "config.json", "dataconfig.json")
	if err == nil {
		cc = checkConfigFrom(dcfg)
		sheetName = cfg.SheetName
	} else {
		fmt.Fprintf(os.Stderr, "配置加载失败，使用默认阈值: %v\n", err)
		dcfg = nil
	}

	runner, err := engine.NewRunner(cc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ds, err := file.ReadDataset(dataFile, sheetName, dcfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rep, err := runner.Run(ds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	fmt.Print(report.FormatText(rep))
	if !rep.Passed() {
		return 1
	}
	return 0
}

// runService 服务模式：定时拉取邮件附件 + 监控数据目录，自动校验并分发报告
func runService(configDir string) {
	cfg, dcfg, err := config.LoadConfig(configDir, "config.json", "dataconfig.json")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logName := cfg.LogName
	if logName == "" {
		logName = "app.log"
	}
	logger, err := storage.NewLogger(logName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	runner, err := engine.NewRunner(checkConfigFrom(dcfg))
	if err != nil {
		log.Fatal("Failed to create runner:", err)
	}

	pusher := datapush.NewPusher(cfg.Push.Webhook, cfg.Push.Token)

	// 新数据文件落盘后的统一校验入口
	validateFile := func(filePath string) {
		if cfg.LogMaxSize != "" {
			if err := logger.CheckRotate(cfg.LogMaxSize); err != nil {
				logger.Warning("日志轮转失败: " + err.Error())
			}
		}

		logger.Info("开始校验: " + filePath)
		ds, err := file.ReadDataset(filePath, cfg.SheetName, dcfg)
		if err != nil {
			logger.Error("读取数据失败: " + err.Error())
			return
		}

		rep, err := runner.Run(ds)
		if err != nil {
			logger.Error("校验失败: " + err.Error())
			return
		}

		summary := report.FormatText(rep)
		logger.Info(summary)
		if rep.Passed() {
			return
		}

		// 校验不通过：落盘报告工作簿，推送告警，抄送邮件
		reportPath := filepath.Join(cfg.DataDir, "reports",
			fmt.Sprintf("report_%s.xlsx", time.Now().Format("20060102150405")))
		if err := os.MkdirAll(filepath.Dir(reportPath), 0755); err == nil {
			if err := report.SaveToExcel(rep, reportPath); err != nil {
				logger.Error("报告保存失败: " + err.Error())
				reportPath = ""
			}
		} else {
			reportPath = ""
		}

		if cfg.Push.Webhook != "" {
			if err := pusher.PushReport(rep); err != nil {
				logger.Error("推送告警失败: " + err.Error())
			}
		}
		if cfg.SendEmail.Server != "" {
			subject := fmt.Sprintf("数据质量告警: %s", filepath.Base(filePath))
			if err := email.SendReport(cfg, subject, summary, reportPath); err != nil {
				logger.Error("报告邮件发送失败: " + err.Error())
			}
		}
	}

	// 监控数据目录，邮件附件落盘后也会由这里触发校验
	monitor, err := file.NewMonitor(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to watch data dir:", err)
	}
	defer monitor.Close()

	go func() {
		if err := monitor.Watch(context.Background(), validateFile); err != nil {
			logger.Error("目录监控异常退出: " + err.Error())
		}
	}()

	emailClient := email.NewEmailClient(
		cfg.Email.Server,
		cfg.Email.Username,
		cfg.Email.Password)
	handler := email.NewAttachmentHandler(cfg.DataDir)

	c := cron.New()
	interval := time.Duration(cfg.Email.CheckInterval).String()
	cronSpec := fmt.Sprintf("@every %s", interval)

	err = c.AddFunc(cronSpec, func() {
		target, err := email.FetchLatestDataEmail(emailClient, cfg.Email.TargetSubject, logger)
		if err != nil {
			logger.Error("检查邮件失败: " + err.Error())
			return
		}
		if target == nil {
			return
		}

		// 附件保存到数据目录后由目录监控接手校验
		if _, err := handler.Handle(target, logger); err != nil {
			logger.Error(fmt.Sprintf("处理邮件失败(UID:%d): %v", target.UID, err))
		}
	})
	if err != nil {
		logger.Error("创建定时任务失败: " + err.Error())
		return
	}

	c.Start()
	defer c.Stop()

	logger.Info(fmt.Sprintf("数据质量监控服务已启动(邮件检查间隔: %v)，按Ctrl+C退出", interval))
	select {}
}

// checkConfigFrom 把数据配置里的阈值装配成检查配置
func checkConfigFrom(dcfg *config.DataConfig) engine.CheckConfig {
	return engine.CheckConfig{
		MissingThreshold:     dcfg.MissingThreshold,
		IQRMultiplier:        dcfg.IQRMultiplier,
		CorrelationThreshold: dcfg.CorrelationThreshold,
	}
}
