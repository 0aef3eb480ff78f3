// Package asset は台本上のキャラクターを描画可能なアセットへ解決します。
// 1インスタンスにつき、AI による設定生成 → スキーマ検証 → レンダリング
// URL の組み立て → 画像の取得と保存、までを担当します。個々の失敗は
// 代替画像に置き換えて処理を継続し、実行全体は止めません。
package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/schema"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// defaultRateInterval は解決ワーカーの既定のペーシング間隔です。
	defaultRateInterval = 2 * time.Second
	// resolveBurst は開始直後に同時実行を許すワーカー数です。
	resolveBurst = 2

	styleCacheExpiration    = 30 * time.Minute
	styleCacheCleanup       = 1 * time.Hour
	instanceCacheExpiration = 30 * time.Minute
	instanceCacheCleanup    = 1 * time.Hour
	renderCacheExpiration   = 30 * time.Minute
	renderCacheCleanup      = 1 * time.Hour
)

// HTTPDoer は画像取得に使う HTTP クライアントの最小面です。
// go-http-kit のクライアントをそのまま渡せます。
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// styleEntry は名前ごとに最初に確定したスタイルです。
// ownerID はスタイルを確定させたインスタンスで、そのインスタンス自身は
// 追加の AI 呼び出しなしに設定を使い回します。
type styleEntry struct {
	ownerID string
	cfg     *schema.CharacterConfig
	raw     []byte
}

// ResolverConfig は Resolver の依存と調整値をまとめます。
type ResolverConfig struct {
	Configurator *Configurator
	HTTPClient   HTTPDoer
	Writer       remoteio.OutputWriter
	// BaseURL はレンダリングサービスのエンドポイントです。空なら既定値を使います。
	BaseURL string
	// RunsDir は実行ディレクトリの親です（ローカルパスまたは GCS URI）。
	RunsDir string
	// RateInterval はワーカーのペーシング間隔です。ゼロなら既定値を使います。
	RateInterval time.Duration
}

// Resolver はアセット解決ステージです。
// スタイルキャッシュ（キャラクター名キー、最初に確定した設定が勝つ）と
// インスタンスキャッシュ（実行ディレクトリ＋インスタンス ID キー）の
// 二段構えで重複解決を避けます。高速モードではさらに名前ごとの描画
// キャッシュを使い、同名キャラクターの2体目以降は最初の描画結果を
// そのまま使い回します。
type Resolver struct {
	configurator  *Configurator
	httpClient    HTTPDoer
	writer        remoteio.OutputWriter
	baseURL       string
	runsDir       string
	interval      time.Duration
	styleCache    *cache.Cache
	instanceCache *cache.Cache
	renderCache   *cache.Cache
	styleGroup    singleflight.Group
	renderGroup   singleflight.Group
}

// NewResolver は Resolver を生成します。
func NewResolver(cfg ResolverConfig) *Resolver {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = schema.DefaultBaseURL
	}
	interval := cfg.RateInterval
	if interval <= 0 {
		interval = defaultRateInterval
	}
	return &Resolver{
		configurator:  cfg.Configurator,
		httpClient:    cfg.HTTPClient,
		writer:        cfg.Writer,
		baseURL:       baseURL,
		runsDir:       cfg.RunsDir,
		interval:      interval,
		styleCache:    cache.New(styleCacheExpiration, styleCacheCleanup),
		instanceCache: cache.New(instanceCacheExpiration, instanceCacheCleanup),
		renderCache:   cache.New(renderCacheExpiration, renderCacheCleanup),
	}
}

// workItem は1インスタンス分の解決単位です。
type workItem struct {
	panelIdx int
	charIdx  int
	ch       domain.PanelCharacter
}

// Resolve は台本上の全インスタンスを並列に解決し、run.Assets へ統合します。
// 既存のアセット表は決して上書きしません。
func (r *Resolver) Resolve(ctx context.Context, run *domain.Run) error {
	if !run.HasScript() {
		slog.InfoContext(ctx, "台本がないためアセット解決をスキップします", "run_id", run.RunID)
		return nil
	}
	if run.FastMode && run.HasAssets() {
		slog.InfoContext(ctx, "高速モード: 既存のアセットを再利用します", "run_id", run.RunID, "assets", len(run.Assets))
		return nil
	}

	runDir, err := RunDir(r.runsDir, run.RunID)
	if err != nil {
		return fmt.Errorf("実行ディレクトリの解決に失敗しました: %w", err)
	}

	var items []workItem
	for p, panel := range run.Script.Panels {
		for c, ch := range panel.Characters {
			items = append(items, workItem{panelIdx: p, charIdx: c, ch: ch})
		}
	}
	if len(items) == 0 {
		slog.InfoContext(ctx, "解決対象のキャラクターがいません", "run_id", run.RunID)
		return nil
	}

	newAssets := make(domain.AssetMap, len(items))
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	// Burst 2 により、開始直後に2件までは同時にリクエストを開始できます。
	limiter := rate.NewLimiter(rate.Every(r.interval), resolveBurst)
	slog.InfoContext(ctx, "アセットを並列解決します", "run_id", run.RunID, "count", len(items), "interval", r.interval)

	fastMode := run.FastMode
	for _, item := range items {
		item := item // ゴルーチンのクロージャ対策なのだ
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}
			relPath := r.resolveInstance(egCtx, runDir, item, fastMode)
			mu.Lock()
			newAssets[domain.InstanceID(item.panelIdx, item.charIdx)] = relPath
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("アセット解決が中断されました: %w", err)
	}

	run.Assets = run.Assets.Union(newAssets)
	slog.InfoContext(ctx, "アセット解決が完了しました", "run_id", run.RunID, "resolved", len(newAssets))
	return nil
}

// resolveInstance は1インスタンスを解決し、HTML から参照する画像パスを返します。
// 失敗は代替画像の URL として返し、エラーにはしません。
func (r *Resolver) resolveInstance(ctx context.Context, runDir string, item workItem, fastMode bool) string {
	id := domain.InstanceID(item.panelIdx, item.charIdx)
	cacheKey := runDir + "#" + id
	if cached, ok := r.instanceCache.Get(cacheKey); ok {
		return cached.(string)
	}
	if fastMode {
		return r.resolveByName(ctx, runDir, item, id, cacheKey)
	}
	return r.resolveFresh(ctx, runDir, item, id, cacheKey)
}

// resolveByName は高速モード専用で、同名キャラクターの最初の描画結果を
// 姿勢や表情の指定を無視してそのまま使い回します。追加の AI 呼び出しも
// 画像取得も発生しません。代替画像はキャッシュしないため、初回が失敗した
// 場合は次のインスタンスが解決をやり直します。
func (r *Resolver) resolveByName(ctx context.Context, runDir string, item workItem, id, cacheKey string) string {
	renderKey := runDir + "#" + SafeName(item.ch.Name)
	owned := false
	val, _, _ := r.renderGroup.Do(renderKey, func() (interface{}, error) {
		if cached, ok := r.renderCache.Get(renderKey); ok {
			return cached, nil
		}
		owned = true
		relPath := r.resolveFresh(ctx, runDir, item, id, cacheKey)
		if !IsPlaceholder(relPath) {
			r.renderCache.Set(renderKey, relPath, cache.DefaultExpiration)
		}
		return relPath, nil
	})

	relPath := val.(string)
	if !owned {
		slog.InfoContext(ctx, "高速モード: 同名キャラクターの描画を使い回します",
			"instance", id, "character", item.ch.Name, "path", relPath)
		if !IsPlaceholder(relPath) {
			r.instanceCache.Set(cacheKey, relPath, cache.DefaultExpiration)
		}
	}
	return relPath
}

// resolveFresh は設定生成から画像の保存までを1インスタンス分実行します。
func (r *Resolver) resolveFresh(ctx context.Context, runDir string, item workItem, id, cacheKey string) string {
	slog.InfoContext(ctx, "アセットを解決しています",
		"instance", id, "character", item.ch.Name, "slot", item.ch.Slot)

	req := Request{
		InstanceID: id,
		Name:       item.ch.Name,
		VisualDesc: item.ch.VisualDesc,
		Slot:       item.ch.Slot,
		Facing:     item.ch.Facing,
		Pose:       item.ch.Pose,
		Expression: item.ch.Expression,
	}

	cfg, raw, err := r.configure(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "設定の生成に失敗したため代替画像を使います",
			"instance", id, "character", item.ch.Name, "error", err)
		return PlaceholderConfigError
	}

	if err := r.persistParams(ctx, runDir, id, raw); err != nil {
		// 解決済み設定はデバッグ用の副産物なので、保存失敗で実行は止めません。
		slog.WarnContext(ctx, "解決済み設定の保存に失敗しました", "instance", id, "error", err)
	}

	renderURL := cfg.URL(r.baseURL)
	data, err := r.fetch(ctx, renderURL)
	if err != nil {
		slog.WarnContext(ctx, "画像の取得に失敗したため代替画像を使います",
			"instance", id, "url", renderURL, "error", err)
		return PlaceholderFetchError
	}

	relPath := ImageRelPath(item.ch.Name, item.panelIdx, item.charIdx)
	if err := r.persistImage(ctx, runDir, relPath, data); err != nil {
		slog.WarnContext(ctx, "画像の保存に失敗したため代替画像を使います",
			"instance", id, "error", err)
		return PlaceholderFetchError
	}

	r.instanceCache.Set(cacheKey, relPath, cache.DefaultExpiration)
	return relPath
}

// configure はスタイルキャッシュを経由して設定を確定します。
// 最初に確定した名前のスタイルが勝ち、同名の後続インスタンスは
// そのスタイルを前提に姿勢と表情だけを変えた設定を生成します。
func (r *Resolver) configure(ctx context.Context, req Request) (*schema.CharacterConfig, []byte, error) {
	style, shared, styleErr := r.resolveStyle(ctx, req)
	if styleErr != nil {
		// 自分のフライトの失敗なら、既に規定回数の試行を使い切っています。
		if !shared {
			return nil, nil, styleErr
		}
		slog.WarnContext(ctx, "他インスタンスのスタイル確定に失敗したため単独で設定を生成します",
			"character", req.Name, "error", styleErr)
		return r.configurator.Configure(ctx, req)
	}

	if style.ownerID == req.InstanceID {
		return style.cfg, style.raw, nil
	}
	req.PreviousStyle = string(style.raw)
	return r.configurator.Configure(ctx, req)
}

// resolveStyle は名前ごとのスタイルを一度だけ確定します。
// 同名の同時解決は singleflight で1回の AI 呼び出しにまとめます。
// 戻り値の shared は結果を他のフライトと共有したかどうかです。
func (r *Resolver) resolveStyle(ctx context.Context, req Request) (*styleEntry, bool, error) {
	key := SafeName(req.Name)
	if cached, ok := r.styleCache.Get(key); ok {
		return cached.(*styleEntry), true, nil
	}

	val, err, shared := r.styleGroup.Do(key, func() (interface{}, error) {
		// 待機中に他のフライトが確定させた場合に備えた二重チェックです。
		if cached, ok := r.styleCache.Get(key); ok {
			return cached, nil
		}
		cfg, raw, err := r.configurator.Configure(ctx, req)
		if err != nil {
			return nil, err
		}
		entry := &styleEntry{ownerID: req.InstanceID, cfg: cfg, raw: raw}
		r.styleCache.Set(key, entry, cache.DefaultExpiration)
		return entry, nil
	})
	if err != nil {
		return nil, shared, err
	}

	entry, ok := val.(*styleEntry)
	if !ok {
		return nil, shared, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return entry, shared, nil
}

// persistParams は解決済み設定を params/{instance}.json として保存します。
func (r *Resolver) persistParams(ctx context.Context, runDir, instanceID string, raw []byte) error {
	paramsDir, err := ResolveOutputPath(runDir, ParamsDir)
	if err != nil {
		return err
	}
	paramsPath, err := ResolveOutputPath(paramsDir, instanceID+".json")
	if err != nil {
		return err
	}
	return r.writer.Write(ctx, paramsPath, bytes.NewReader(raw), "application/json")
}

// persistImage は取得した PNG を images/ 配下へ保存します。
func (r *Resolver) persistImage(ctx context.Context, runDir, relPath string, data []byte) error {
	imagesDir, err := ResolveOutputPath(runDir, ImagesDir)
	if err != nil {
		return err
	}
	imagePath, err := ResolveOutputPath(imagesDir, relPath[len(ImagesDir)+1:])
	if err != nil {
		return err
	}
	return r.writer.Write(ctx, imagePath, bytes.NewReader(data), "image/png")
}

// fetch はレンダリングサービスから画像を取得します。
func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの構築に失敗しました: %w", err)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("画像の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("画像の取得に失敗しました: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("応答の読み取りに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("空の応答が返されました")
	}
	return data, nil
}
