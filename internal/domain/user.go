// Package domain 定义已登录购物者的最小身份模型。
// 用户与会话的存储由外部认证服务负责，本服务只消费令牌中的身份。
package domain

// User 表示当前已认证的购物者。
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
