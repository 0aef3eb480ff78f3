package schema

import "strings"

// このファイルは comicgen サービスが受理する属性語彙の正本です。
// 語彙の出典はサービス側のカタログであり、ここでの追加・削除は
// そのままレンダリング要求の妥当性に直結します。

// vocab は閉じた列挙語彙です。検証とエラーメッセージ生成に使います。
type vocab []string

func (v vocab) contains(s string) bool {
	for _, item := range v {
		if item == s {
			return true
		}
	}
	return false
}

func (v vocab) String() string {
	return strings.Join(v, ", ")
}

// boxShapes は吹き出し背景の形状です。空文字は「背景なし」を意味します。
var boxShapes = vocab{"", "box", "circle", "outline"}

// --- aavatar: 頭部（性別→髪型）・顔（画風→表情）・身体（衣装→ポーズ）の依存語彙 ---

var aavatarGenders = vocab{"female", "male", "unisex"}

var aavatarHairstyles = map[string]vocab{
	"female": {"bindi", "blondecurly", "blondeshort", "densehair", "densehairwithband", "hairband", "highbun", "messyponytail", "oldladywithglasses", "shorthair", "wavy"},
	"male":   {"brettbeard", "egyptiangoatee", "englishmoustache", "fullgoatee", "oldman", "oldmanwithglasses", "paintersmoustache", "smallgoatee", "spikes"},
	"unisex": {"bald", "densedreads", "mediumdreads", "mediumhair", "mediumhairwithglasses", "topknotbun", "turban"},
}

var aavatarFaceStyles = vocab{"sketchy", "strokes", "thinlines"}

var aavatarEmotions = vocab{"afraid", "angry", "annoyed", "blush", "confused", "cry", "cryingloudly", "cunning", "curious", "disappointed", "dozing", "drunk", "excited", "happy", "hearteyes", "irritated", "lookingdown", "lookingleft", "lookingright", "lookingup", "mask", "neutral", "nevermind", "ooh", "rofl", "rollingeyes", "sad", "scared", "shocked", "shout", "smile", "smirk", "starstruck", "surprised", "tired", "tongueout", "whistle", "wink", "worried"}

var aavatarPoses = map[string]vocab{
	"bodycon":             {"handonhip", "handsfolded", "handsonhip", "holdingbag", "holdinglaptop", "pointingleft", "shy", "sittingonbeanbag", "super", "walk", "wonderwoman"},
	"casualfullsleevetee": {"angry", "handsfolded", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingright", "pointingup", "readingpaper", "ridingbicycle", "ridingbike", "shrug", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonfloorexplaining", "sittingonfloorholdinglaptop", "sittingonfloorshrug", "super", "thinking", "thumbsup", "yuhoo"},
	"casualtee":           {"angry", "handsfolded", "handsheldback", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointing45degree", "pointingright", "pointingup", "readingpaper", "ridingbicycle", "ridingbike", "shrug", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonthefloorexplaining", "sittingonthefloorholdinglaptop", "sittingonthefloorshrug", "super", "thinking", "thumbsup", "yuhoo"},
	"formal":              {"explaining", "explaining45degreesdown", "explaining45degreesup", "explainingwithbothhands", "handsclasped", "handstouchingchin", "holdingboard", "holdingbook", "holdingstick", "normal", "pointingleft"},
	"formalsuit":          {"handsfolded", "handsheldback", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointing45degree", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
	"fullsleeveshirt":     {"angry", "handsfolded", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingright", "pointingup", "readingpaper", "ridingbicycle", "ridingbike", "run", "shrug", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagexplaining", "sittingonbeanbagholdinglaptop", "sittingonfloorexplaining", "sittingonfloorholdinglaptop", "sittingonthefloorshrug", "super", "thinking", "thumbsup", "yuhoo"},
	"saree":               {"angry", "explaining", "handsfolded", "handsonhip", "hi", "holdingcoffee", "normal", "pointingup", "readingpaper", "shrug", "super", "thumbsup"},
	"stickfigure":         {"angry", "handsfolded", "handsheldback", "handsonhip", "holdingbook", "holdinglaptop", "pointingright", "pointingup", "readingpaper", "super", "thinking", "thumbsup", "yuhoo"},
	"tuckedinshirt":       {"dance", "handsclasped", "handsfolded", "handsinpocket", "handsonhead", "handsonhip", "holdingbag", "leaning", "superman"},
	"uniform":             {"angry", "handsfolded", "handsheldback", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingleft", "pointingright", "pointingup", "readingpaper", "ridingbicycle", "ridingbike", "shrug", "sittingatdesk", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonfloorexplaining", "sittingonfloorholdinglaptop", "sittingonfloorshrug", "super", "thinking", "thumbsup", "yuhoo"},
}

// --- 角度依存ペルソナ: 角度ごとに表情・ポーズの語彙が変わる ---

// angleVocab は1つの角度で許される表情とポーズの組です。
type angleVocab struct {
	emotions vocab
	poses    vocab
}

var anglePersonas = map[Kind]map[string]angleVocab{
	KindEthan: {
		"back": {
			emotions: vocab{"backsidehead"},
			poses:    vocab{"handpointingup", "handsfolded", "handsonhip", "normal"},
		},
		"side": {
			emotions: vocab{"afraid", "angry", "cry", "cryingloudly", "curious", "excited", "happy", "irritated", "lookingdown", "lookingup", "neutral", "ooh", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "wink"},
			poses:    vocab{"explaining45degrees", "holdingstick", "normal", "pointingatboard", "pointingright", "pointingrightat45degrees", "righthandpointing"},
		},
		"straight": {
			emotions: vocab{"afraid", "angry", "annoyed", "cry", "cryingloudly", "cunning", "curious", "excited", "happy", "irritated", "lookingdown", "lookingleft", "lookingright", "lookingup", "neutral", "ooh", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "wink"},
			poses:    vocab{"explaining", "explaining45degreesdown", "explaining45degreesup", "explainingwithbothhands", "handsclasped", "handstouchingchin", "holdingboard", "holdingbook", "holdingstick", "normal", "pointingleft"},
		},
	},
	KindBean: {
		"side": {
			emotions: vocab{"angry", "annoyed", "blush", "cry", "curious", "hmm", "lookingdown", "lookingup", "neutral", "sad", "shocked", "shout", "smile", "tired", "wink", "worried", "yuhoo"},
			poses:    vocab{"angry", "handsfolded", "handsonhip", "holdingbook", "holdinglaptop", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
		"straight": {
			emotions: vocab{"angry", "annoyed", "blush", "cry", "curious", "hmm", "lookingdown", "lookingup", "neutral", "sad", "shout", "smile", "tired", "wink", "worried", "yuhoo"},
			poses:    vocab{"angry", "handsfolded", "handsonhip", "holdingbook", "holdinglaptop", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
	},
	KindDeenuova: {
		"side": {
			emotions: vocab{"afraid", "angry", "confused", "cry", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"explaining", "handsfolded", "handsinpocket", "holdingcoffee", "holdinglaptop", "holdingmobile", "pointingright", "pointingup", "readingpaper", "rightturn", "shrug"},
		},
		"sitting": {
			emotions: vocab{"afraid", "angry", "confused", "cry", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"ridingbicycle", "ridingbike", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonthefloorexplaining", "sittingonthefloorholdinglaptop", "sittingonthefloorshrug"},
		},
		"straight": {
			emotions: vocab{"afraid", "angry", "annoyed", "confused", "cry", "cryingloudly", "cunning", "curious", "dozing", "excited", "hmm", "irritated", "laugh", "lookingdown", "lookingleft", "lookingright", "lookingup", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"handsfolded", "handsheldback", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointing45degree", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
	},
	KindDeynuovo: {
		"side": {
			emotions: vocab{"afraid", "angry", "cryingloudly", "curious", "dozing", "excited", "hmm", "laugh", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"handsfolded", "handsinpocket", "holdingcoffee", "holdingmobile", "leftturn", "leftturnhandsfolded", "pointingright", "pointingup", "readingpaper", "thumbsup", "yuhoo"},
		},
		"sitting": {
			emotions: vocab{"afraid", "angry", "cryingloudly", "curious", "dozing", "hmm", "laugh", "lookingdown", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"ridingbicycle", "ridingbike", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonfloorexplaining", "sittingonfloorholdinglaptop", "sittingonfloorshrug"},
		},
		"straight": {
			emotions: vocab{"afraid", "angry", "confused", "cryingloudly", "cunning", "curious", "dozing", "excited", "hmm", "irritated", "laugh", "lookingdown", "lookingright", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"angry", "handsfolded", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
	},
	KindPriyanuova: {
		"sitting": {
			emotions: vocab{"afraid", "angry", "annoyed", "blush", "cry", "cryingloudly", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "lookingdown", "lookingleft", "lookingright", "lookingup", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"ridingbicycle", "ridingbike", "ridingcar", "sittingatdesk", "sittingonbeanbagholdinglaptop", "sittingonbeanbagholdingmobile", "sittingonthefloorexplaining", "sittingonthefloorholdinglaptop", "sittingonthefloorshrug"},
		},
		"straight": {
			emotions: vocab{"afraid", "angry", "annoyed", "blush", "cry", "cunning", "curious", "excited", "happy", "irritated", "laugh", "lookingdown", "lookingleft", "lookingright", "lookingup", "loudcry", "neutral", "rofl", "rollingeyes", "sad", "shocked", "shout", "sleep", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"angry", "handsfolded", "handsheldback", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingleft", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
	},
	KindRingonuovo: {
		"sitting": {
			emotions: vocab{"angry", "confused", "cry", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "lookingdown", "lookingleft", "lookingright", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"ridingbicycle", "ridingbike", "ridingcar", "sittingatdesk", "sittingatdeskhandsspread", "sittingatdeskholdingmobile", "sittingonbeanbagexplaining", "sittingonbeanbagholdinglaptop", "sittingonfloorexplaining", "sittingonfloorholdinglaptop", "sittingonthefloorshrug"},
		},
		"straight": {
			emotions: vocab{"angry", "confused", "cry", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "lookingdown", "lookingleft", "lookingright", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"},
			poses:    vocab{"angry", "handsfolded", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointingright", "pointingup", "readingpaper", "run", "shrug", "super", "thinking", "thumbsup", "yuhoo"},
		},
	},
}

// --- 正面固定ペルソナ: 表情とポーズのみ ---

// flatVocab は角度を持たないペルソナの表情・ポーズ語彙です。
type flatVocab struct {
	emotions vocab
	poses    vocab
}

// bill と sophie は同じ語彙を共有しています（サービス側の仕様）。
var billSophieEmotions = vocab{"afraid", "angry", "confused", "cry", "cunning", "curious", "dozing", "excited", "happy", "hmm", "irritated", "laugh", "neutral", "ooh", "rofl", "rollingeyes", "sad", "shocked", "shout", "smile", "smirk", "surprised", "tired", "wink", "worried"}

var billSophiePoses = vocab{"handsfolded", "handsheldback", "handsinpocket", "handsonhip", "holdingbook", "holdingcoffee", "holdinglaptop", "holdingmobile", "holdingumbrella", "pointing45degree", "pointingright", "pointingup", "readingpaper", "shrug", "super", "thinking", "thumbsup", "yuhoo"}

var flatPersonas = map[Kind]flatVocab{
	KindBill:   {emotions: billSophieEmotions, poses: billSophiePoses},
	KindSophie: {emotions: billSophieEmotions, poses: billSophiePoses},
	KindAryan: {
		emotions: vocab{"angry", "blush", "confused", "cry", "hmm", "laugh", "loudcry", "sad", "shocked", "smile", "wink", "worried"},
		poses:    vocab{"handsfolded", "handsinpocket"},
	},
}
