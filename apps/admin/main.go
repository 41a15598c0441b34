package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/core/obfuscate"
	logsvc "github.com/xufeiok/PineScript-Study/services/logger"
	"github.com/xufeiok/PineScript-Study/storage/jsonfile"
)

func main() {
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(false) // local tool, nothing to report

	codec, err := obfuscate.New(conf.Cipher.Key)
	if err != nil {
		std.Fatalf("cipher: %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:      conf,
		svc:       lesson.NewService(codec, logger, validate, translator),
		source:    jsonfile.NewLessonRepository(conf.Path(conf.Data.SourceFile)),
		published: jsonfile.NewLessonRepository(conf.Path(conf.Data.LessonsFile)),
		openRepo:  func(path string) lesson.Repository { return jsonfile.NewLessonRepository(conf.Path(path)) },
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
