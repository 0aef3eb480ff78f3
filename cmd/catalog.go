package cmd

import (
	"fmt"

	"github.com/shouni/go-comicgen-kit/pkg/schema"

	"github.com/spf13/cobra"
)

// catalogCmd は、comicgen で使えるキャラクターと語彙のカタログを表示するのだ。
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "使えるキャラクターと属性語彙の一覧を表示するのだ。",
	Long: `comicgen サービスが描画できるキャラクター種別の一覧を表示するのだ。
--full を付けると、種別ごとの属性（表情・ポーズ・角度など）の語彙表まで
すべて表示するのだよ。APIキーは不要なのだ。`,
	Example: `  ap-comicgen-go catalog
  ap-comicgen-go catalog --full`,
	RunE: catalogCommand,
}

func init() {
	catalogCmd.Flags().Bool("full", false, "属性語彙の全カタログまで表示するのだ。")
}

func catalogCommand(cmd *cobra.Command, args []string) error {
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("--full フラグの解析に失敗したのだ: %w", err)
	}

	if full {
		fmt.Println(schema.PromptSchema())
		return nil
	}

	fmt.Printf("描画できるキャラクターは %d 種類なのだ:\n\n", len(schema.Kinds()))
	fmt.Println(schema.Roster())
	fmt.Println("\n詳しい属性語彙は --full で表示できるのだ。")
	return nil
}
