package database

import (
	"time"
)

func (db *PgStudyRepository) CreateAccount(params CreateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO users (username, email, password_hash, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, username, email, created_at",
		params.Username,
		params.EmailAddress,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.EmailAddress,
		&u.CreatedAt,
	)

	return u, err
}

func (db *PgStudyRepository) GetAccountById(accountId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, created_at FROM users "+
			"WHERE id = $1 LIMIT 1",
		accountId,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.EmailAddress,
		&user.CreatedAt,
	)

	return user, err
}

func (db *PgStudyRepository) GetAccountByEmail(email string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users "+
			"WHERE email = $1 LIMIT 1",
		email,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.EmailAddress,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	return user, err
}

// CreateCommunity inserts the community, its two default channels and the
// owner membership in a single transaction. A failure in any insert leaves
// no rows behind.
func (db *PgStudyRepository) CreateCommunity(params CreateCommunityParams) (Community, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Community{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO communities (name, description, owner_id, invite_code, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, name, description, owner_id, invite_code, created_at",
		params.Name,
		params.Description,
		params.OwnerId,
		params.InviteCode,
		time.Now().UTC(),
	)

	var community Community
	err = res.Scan(
		&community.Id,
		&community.Name,
		&community.Description,
		&community.OwnerId,
		&community.InviteCode,
		&community.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "communities_invite_code_key") {
			err = ErrInviteCodeTaken
		}
		return Community{}, err
	}

	_, err = tx.Exec(
		"INSERT INTO channels (community_id, name, type, created_at) "+
			"VALUES ($1, $2, $3, $5), ($1, $4, $6, $5)",
		community.Id,
		DefaultTextChannel,
		ChannelText,
		DefaultVoiceChannel,
		time.Now().UTC(),
		ChannelVoice,
	)
	if err != nil {
		return Community{}, err
	}

	_, err = tx.Exec(
		"INSERT INTO community_members (community_id, user_id, role, created_at) "+
			"VALUES ($1, $2, $3, $4)",
		community.Id,
		params.OwnerId,
		RoleOwner,
		time.Now().UTC(),
	)
	if err != nil {
		return Community{}, err
	}

	if err = tx.Commit(); err != nil {
		return Community{}, err
	}

	community.Role = RoleOwner
	community.MemberCount = 1

	return community, nil
}

func (db *PgStudyRepository) GetCommunityById(id int) (Community, error) {
	row := db.conn.QueryRow(
		"SELECT c.id, c.name, c.description, c.owner_id, u.username, c.invite_code, c.created_at, "+
			"(SELECT COUNT(*) FROM community_members WHERE community_id = c.id) "+
			"FROM communities c JOIN users u ON c.owner_id = u.id "+
			"WHERE c.id = $1 LIMIT 1",
		id,
	)

	var c Community
	err := row.Scan(
		&c.Id,
		&c.Name,
		&c.Description,
		&c.OwnerId,
		&c.OwnerUsername,
		&c.InviteCode,
		&c.CreatedAt,
		&c.MemberCount,
	)

	return c, err
}

func (db *PgStudyRepository) GetCommunityByInviteCode(code string) (Community, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, description, owner_id, invite_code, created_at FROM communities "+
			"WHERE invite_code = $1 LIMIT 1",
		code,
	)

	var c Community
	err := row.Scan(
		&c.Id,
		&c.Name,
		&c.Description,
		&c.OwnerId,
		&c.InviteCode,
		&c.CreatedAt,
	)

	return c, err
}

func (db *PgStudyRepository) ListCommunitiesForUser(userId int) ([]Community, error) {
	rows, err := db.conn.Query(
		"SELECT c.id, c.name, c.description, c.owner_id, u.username, c.invite_code, c.created_at, cm.role, "+
			"(SELECT COUNT(*) FROM community_members WHERE community_id = c.id) "+
			"FROM communities c "+
			"JOIN community_members cm ON c.id = cm.community_id "+
			"JOIN users u ON c.owner_id = u.id "+
			"WHERE cm.user_id = $1 ORDER BY c.created_at DESC",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities = make([]Community, 0)
	for rows.Next() {
		var c Community
		if err = rows.Scan(
			&c.Id,
			&c.Name,
			&c.Description,
			&c.OwnerId,
			&c.OwnerUsername,
			&c.InviteCode,
			&c.CreatedAt,
			&c.Role,
			&c.MemberCount,
		); err != nil {
			break
		}

		communities = append(communities, c)
	}

	return communities, err
}

// JoinCommunity adds userId as a member inside a single transaction. The
// community row is locked before the member count is checked so concurrent
// joiners serialize and the member cap holds.
func (db *PgStudyRepository) JoinCommunity(communityId, userId int) (Membership, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Membership{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int
	err = tx.QueryRow("SELECT id FROM communities WHERE id = $1 FOR UPDATE", communityId).Scan(&id)
	if err != nil {
		return Membership{}, err
	}

	var count int
	err = tx.QueryRow("SELECT COUNT(*) FROM community_members WHERE community_id = $1", communityId).Scan(&count)
	if err != nil {
		return Membership{}, err
	}

	if count >= MaxMembers {
		err = ErrCommunityFull
		return Membership{}, err
	}

	res := tx.QueryRow(
		"INSERT INTO community_members (community_id, user_id, role, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, community_id, user_id, role, created_at",
		communityId,
		userId,
		RoleMember,
		time.Now().UTC(),
	)

	var m Membership
	err = res.Scan(
		&m.Id,
		&m.CommunityId,
		&m.UserId,
		&m.Role,
		&m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "community_members_community_id_user_id_key") {
			err = ErrAlreadyMember
		}
		return Membership{}, err
	}

	if err = tx.Commit(); err != nil {
		return Membership{}, err
	}

	return m, nil
}

func (db *PgStudyRepository) GetMembership(communityId, userId int) (Membership, error) {
	row := db.conn.QueryRow(
		"SELECT id, community_id, user_id, role, created_at FROM community_members "+
			"WHERE community_id = $1 AND user_id = $2 LIMIT 1",
		communityId,
		userId,
	)

	var m Membership
	err := row.Scan(
		&m.Id,
		&m.CommunityId,
		&m.UserId,
		&m.Role,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgStudyRepository) DeleteMembership(communityId, userId int) error {
	_, err := db.conn.Exec(
		"DELETE FROM community_members WHERE community_id = $1 AND user_id = $2",
		communityId,
		userId,
	)

	return err
}

// CreateChannel inserts a channel inside a single transaction, holding the
// community row lock while the channel cap and name uniqueness are checked.
func (db *PgStudyRepository) CreateChannel(params CreateChannelParams) (Channel, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Channel{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int
	err = tx.QueryRow("SELECT id FROM communities WHERE id = $1 FOR UPDATE", params.CommunityId).Scan(&id)
	if err != nil {
		return Channel{}, err
	}

	var count int
	err = tx.QueryRow("SELECT COUNT(*) FROM channels WHERE community_id = $1", params.CommunityId).Scan(&count)
	if err != nil {
		return Channel{}, err
	}

	if count >= MaxChannels {
		err = ErrChannelLimit
		return Channel{}, err
	}

	res := tx.QueryRow(
		"INSERT INTO channels (community_id, name, type, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, community_id, name, type, created_at",
		params.CommunityId,
		params.Name,
		params.Kind,
		time.Now().UTC(),
	)

	var channel Channel
	err = res.Scan(
		&channel.Id,
		&channel.CommunityId,
		&channel.Name,
		&channel.Kind,
		&channel.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "channels_community_id_lower_name_key") {
			err = ErrDuplicateChannel
		}
		return Channel{}, err
	}

	if err = tx.Commit(); err != nil {
		return Channel{}, err
	}

	return channel, nil
}

func (db *PgStudyRepository) GetChannelById(id int) (Channel, error) {
	row := db.conn.QueryRow(
		"SELECT id, community_id, name, type, created_at FROM channels "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var channel Channel
	err := row.Scan(
		&channel.Id,
		&channel.CommunityId,
		&channel.Name,
		&channel.Kind,
		&channel.CreatedAt,
	)

	return channel, err
}

// ListChannels returns a community's channels with the general text channel
// first, remaining text channels before voice channels, oldest first within
// each group.
func (db *PgStudyRepository) ListChannels(communityId int) ([]Channel, error) {
	rows, err := db.conn.Query(
		"SELECT id, community_id, name, type, created_at FROM channels "+
			"WHERE community_id = $1 "+
			"ORDER BY CASE WHEN name = 'general' THEN 0 ELSE 1 END, type ASC, created_at ASC",
		communityId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels = make([]Channel, 0)
	for rows.Next() {
		var channel Channel
		if err = rows.Scan(
			&channel.Id,
			&channel.CommunityId,
			&channel.Name,
			&channel.Kind,
			&channel.CreatedAt,
		); err != nil {
			break
		}

		channels = append(channels, channel)
	}

	return channels, err
}

func (db *PgStudyRepository) DeleteChannel(id int) error {
	_, err := db.conn.Exec("DELETE FROM channels WHERE id = $1", id)

	return err
}

func (db *PgStudyRepository) CreateMessage(channelId, userId int, content string) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (channel_id, user_id, content, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, channel_id, user_id, content, created_at",
		channelId,
		userId,
		content,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.ChannelId,
		&msg.UserId,
		&msg.Content,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgStudyRepository) GetMessages(channelId, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(
		"SELECT m.id, m.channel_id, m.user_id, u.username, m.content, m.created_at "+
			"FROM (SELECT * FROM messages WHERE channel_id = $1 ORDER BY created_at DESC LIMIT $2) m "+
			"JOIN users u ON m.user_id = u.id ORDER BY m.created_at ASC",
		channelId,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(
			&msg.Id,
			&msg.ChannelId,
			&msg.UserId,
			&msg.Username,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			break
		}

		messages = append(messages, msg)
	}

	return messages, err
}
