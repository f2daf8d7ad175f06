package service

import "errors"

// 操作の失敗はすべてこの型付きエラー群として境界まで伝播し、
// ハンドラ層で安定したエラーコードに変換される。
var (
	// ErrNotAuthorized はロール・所有権の検査に失敗した場合
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotFound はエンティティが存在しないか呼び出し元の所有でない場合
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition は状態機械に反する遷移
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrDuplicateVersion は (projectId, targetVersion) の重複
	ErrDuplicateVersion = errors.New("duplicate version")
	// ErrAlreadyMember は既にメンバー（招待中含む）のユーザーへの招待
	ErrAlreadyMember = errors.New("already a member")
	// ErrNoSuchInvitation は存在しない・受諾済みの招待への操作
	ErrNoSuchInvitation = errors.New("no such invitation")
	// ErrLastAdminProtection は最後の ADMIN を失わせる操作
	ErrLastAdminProtection = errors.New("last admin protection")
	// ErrMissingGroupContext は INVITED_GROUP チェンジログ削除時の groupId 欠落
	ErrMissingGroupContext = errors.New("missing group context")
	// ErrCrossProjectMove はプロジェクトをまたぐチェンジノート移動
	ErrCrossProjectMove = errors.New("cross-project move")
	// ErrInvalidInput は必須フィールドの欠落・不正値
	ErrInvalidInput = errors.New("invalid input")
	// ErrPartialFanout はファンアウト書き込みの失敗。トランザクションごと
	// ロールバックされるため、引き金となった状態遷移も含めて何も起きていない。
	ErrPartialFanout = errors.New("partial fanout failure")
)
